// controller/preference_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	sail_errors "github.com/sapictureday/sail/errors"
	"github.com/sapictureday/sail/service"
	"github.com/sapictureday/sail/util"
)

type PreferenceController struct {
	preferenceService service.IPreferenceService
}

func NewPreferenceController(preferenceService service.IPreferenceService) *PreferenceController {
	return &PreferenceController{
		preferenceService: preferenceService,
	}
}

// RegisterRoutes registers the API routes
func (pc *PreferenceController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", pc.ListPreferences)
	r.GET("/active", pc.GetActiveWorkspace)
	r.PUT("/primary", pc.SetPrimary)
	r.PUT("/:workspaceID/enabled", pc.SetEnabled)
}

type setPrimaryRequest struct {
	WorkspaceID string `json:"workspace_id" binding:"required"`
}

type setEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// ListPreferences endpoint
func (pc *PreferenceController) ListPreferences(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sail_errors.ErrUnauthorized)
		return
	}

	prefs, err := pc.preferenceService.ListPreferences(c, userID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list preferences", err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// GetActiveWorkspace endpoint. An explicit workspace_id query resolves that
// workspace directly; otherwise the preference fallback chain runs.
func (pc *PreferenceController) GetActiveWorkspace(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sail_errors.ErrUnauthorized)
		return
	}

	workspace := pc.preferenceService.ResolveActive(c, userID, c.Query("workspace_id"))
	c.JSON(http.StatusOK, gin.H{"workspace": workspace})
}

// SetPrimary endpoint
func (pc *PreferenceController) SetPrimary(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sail_errors.ErrUnauthorized)
		return
	}

	var req setPrimaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid preference data", sail_errors.ErrInvalidPreferenceData)
		return
	}

	if err := pc.preferenceService.SetPrimary(c, userID, req.WorkspaceID); err != nil {
		if errors.Is(err, sail_errors.ErrWorkspaceNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Workspace not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to set primary workspace", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// SetEnabled endpoint
func (pc *PreferenceController) SetEnabled(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sail_errors.ErrUnauthorized)
		return
	}

	var req setEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid preference data", sail_errors.ErrInvalidPreferenceData)
		return
	}

	if err := pc.preferenceService.SetEnabled(c, userID, c.Param("workspaceID"), *req.Enabled); err != nil {
		if errors.Is(err, sail_errors.ErrWorkspaceNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Workspace not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update preference", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
