package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/fusbox/chatarbor-alternative/internal/interfaces/httpserver/handlers"
)

func registerAdminRoutes(router gin.IRoutes, handler *handlers.AdminHandler) {
	router.GET("/admin/system-prompt", handler.GetSystemPrompt)
	router.PUT("/admin/system-prompt", handler.SetSystemPrompt)
}
