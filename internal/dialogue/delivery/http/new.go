package http

import (
	"github.com/gin-gonic/gin"

	"disaster-safety-assistant/internal/dialogue"
	pkgLog "disaster-safety-assistant/pkg/log"
)

// Handler is the HTTP delivery surface of the dialogue domain.
type Handler interface {
	ProcessTurn(c *gin.Context)
}

type handler struct {
	l  pkgLog.Logger
	uc dialogue.UseCase
}

// New creates a new dialogue HTTP handler.
func New(l pkgLog.Logger, uc dialogue.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
