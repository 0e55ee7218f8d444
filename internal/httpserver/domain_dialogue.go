package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"disaster-safety-assistant/internal/middleware"
)

// setupDialogueDomain registers the dialogue routes.
//
// Pattern to follow when adding a new domain:
//  1. Build the UseCase in cmd/api and pass its HTTP handler via Config.
//  2. Register Routes: rg.Group("/myresource") + handler methods.
func (srv HTTPServer) setupDialogueDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) {
	chat := api.Group("/chat")
	chat.Use(mw.RateLimit())
	chat.POST("", srv.dialogueHandler.ProcessTurn)

	srv.l.Infof(ctx, "Dialogue domain registered at POST /api/v1/chat")
}
