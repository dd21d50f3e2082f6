// controller/page_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sail_errors "github.com/sapictureday/sail/errors"
	"github.com/sapictureday/sail/service"
	"github.com/sapictureday/sail/util"
)

// PageController serves the handful of page-shaped routes the gatekeeper
// redirects to. The real pages are rendered client-side; these endpoints
// return the data behind them.
type PageController struct {
	preferenceService service.IPreferenceService
}

func NewPageController(preferenceService service.IPreferenceService) *PageController {
	return &PageController{preferenceService: preferenceService}
}

// RegisterRoutes registers the page routes on the root router
func (pg *PageController) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", pg.Health)
	r.GET("/login", pg.Login)
	r.GET("/dashboard", pg.Dashboard)
}

// Health endpoint
func (pg *PageController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Login landing. Echoes the continuation path the gatekeeper attached so the
// client can resume after authenticating.
func (pg *PageController) Login(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"login": "required",
		"next":  c.Query("next"),
	})
}

// Dashboard is the default authenticated landing. It resolves the workspace
// personalizing this user's view; a null workspace means no personalization
// is available this cycle.
func (pg *PageController) Dashboard(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sail_errors.ErrUnauthorized)
		return
	}

	workspace := pg.preferenceService.ResolveActive(c, userID, "")
	c.JSON(http.StatusOK, gin.H{
		"user_id":   userID,
		"workspace": workspace,
	})
}
