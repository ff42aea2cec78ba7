package handler

import (
	"net/http"

	"itsupport/internal/app/middleware"
	"itsupport/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes wires every endpoint. Pages and auth are public, the
// form is open to any signed-in user, the dashboard is admin only.
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")
	{
		pages := api.Group("/pages")
		{
			pages.GET("/home", h.GetHomePage)
			pages.GET("/services", h.GetServicesPage)
			pages.GET("/pricing", h.GetPricingPage)
			pages.GET("/contact", h.GetContactPage)
		}
		api.POST("/contact", h.SendContactMessage)

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.AuthHandler.RegisterUser)
			auth.POST("/login", h.AuthHandler.LoginUser)
			auth.POST("/logout", authMiddleware.WithAuthCheck(role.Client, role.Admin), h.AuthHandler.LogoutUser)
			auth.GET("/profile", authMiddleware.WithAuthCheck(role.Client, role.Admin), h.AuthHandler.GetProfile)
			auth.PUT("/profile", authMiddleware.WithAuthCheck(role.Client, role.Admin), h.AuthHandler.UpdateProfile)
		}

		requests := api.Group("/requests")
		{
			drafts := requests.Group("/drafts")
			{
				drafts.POST("", h.CreateDraft)
				drafts.GET("/:id", h.GetDraft)
				drafts.PUT("/:id", h.UpdateDraft)
				drafts.POST("/:id/advance", h.AdvanceDraft)
				drafts.POST("/:id/back", h.BackDraft)
				drafts.POST("/:id/submit", authMiddleware.WithAuthCheck(role.Client, role.Admin), h.SubmitDraft)
			}

			requests.GET("", authMiddleware.WithAuthCheck(role.Admin), h.ListRequests)
			requests.GET("/:id", authMiddleware.WithAuthCheck(role.Admin), h.GetRequest)
			requests.PUT("/:id/status", authMiddleware.WithAuthCheck(role.Admin), h.UpdateRequestStatus)
		}
	}

	router.NoRoute(func(ctx *gin.Context) {
		h.errorResponse(ctx, http.StatusNotFound, "page introuvable")
	})
}
