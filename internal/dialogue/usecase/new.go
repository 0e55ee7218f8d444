package usecase

import (
	"disaster-safety-assistant/internal/dialogue"
	"disaster-safety-assistant/internal/engine"
	pkgLog "disaster-safety-assistant/pkg/log"
)

type implUseCase struct {
	l      pkgLog.Logger
	engine *engine.Engine
}

// Ensure implUseCase implements dialogue.UseCase
var _ dialogue.UseCase = (*implUseCase)(nil)

// New creates a new dialogue UseCase instance.
func New(l pkgLog.Logger, eng *engine.Engine) *implUseCase {
	return &implUseCase{
		l:      l,
		engine: eng,
	}
}
