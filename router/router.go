// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sapictureday/sail/controller"
	"github.com/sapictureday/sail/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	gatekeeper *middleware.Gatekeeper,
	rateLimitRequests int,
	rateLimitWindow time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SecureHeaders(rateLimitRequests, rateLimitWindow))
	router.Use(gatekeeper.Handler())

	controllers.Page.RegisterRoutes(router)

	api := router.Group("/api")
	controllers.Auth.RegisterRoutes(api.Group("/auth"))
	controllers.Preference.RegisterRoutes(api.Group("/preferences"))
	controllers.Workspace.RegisterRoutes(api.Group("/admin/workspaces"))

	webhooks := api.Group("/webhooks")
	webhooks.Use(middleware.RateLimiter(rateLimitRequests, rateLimitWindow))
	controllers.Webhook.RegisterRoutes(webhooks)

	return router
}
