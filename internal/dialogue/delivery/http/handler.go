package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"disaster-safety-assistant/internal/dialogue"
	"disaster-safety-assistant/internal/model"
	pkgResponse "disaster-safety-assistant/pkg/response"
)

// processTurnReq is the inbound chat request body.
type processTurnReq struct {
	SessionID         string                `json:"session_id"`
	DeviceID          string                `json:"device_id" binding:"required"`
	UserInput         string                `json:"user_input" binding:"required"`
	UserLanguage      string                `json:"user_language"`
	Location          string                `json:"location"`
	LocalContactCount int                   `json:"local_contact_count"`
	ExternalAlerts    []model.ExternalAlert `json:"external_alerts"`
}

func (r processTurnReq) toInput() dialogue.TurnInput {
	return dialogue.TurnInput{
		SessionID:         r.SessionID,
		DeviceID:          r.DeviceID,
		UserInput:         r.UserInput,
		UserLanguage:      r.UserLanguage,
		Location:          r.Location,
		LocalContactCount: r.LocalContactCount,
		ExternalAlerts:    r.ExternalAlerts,
	}
}

// ProcessTurn handles one chat turn.
func (h *handler) ProcessTurn(c *gin.Context) {
	ctx := c.Request.Context()

	var req processTurnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "dialogue handler: failed to parse request: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	output, err := h.uc.ProcessTurn(ctx, req.toInput())
	if err != nil {
		if errors.Is(err, dialogue.ErrMissingDeviceID) || errors.Is(err, dialogue.ErrMissingUserInput) {
			pkgResponse.Error(c, err, nil)
			return
		}
		h.l.Errorf(ctx, "dialogue handler: uc.ProcessTurn: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, output)
}
