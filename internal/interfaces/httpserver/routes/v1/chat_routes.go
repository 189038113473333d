package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/fusbox/chatarbor-alternative/internal/interfaces/httpserver/handlers"
)

func registerChatRoutes(router gin.IRoutes, handler *handlers.ChatHandler) {
	router.POST("/chat", handler.Chat)

	router.GET("/sessions", handler.ListSessions)
	router.GET("/sessions/:session_id", handler.GetSession)
	router.POST("/sessions/:session_id/clear", handler.ClearMessages)
	router.PATCH("/sessions/:session_id/model", handler.UpdateModel)
}
