package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-engine/internal/api/dto"
	"github.com/spec-kit/sla-engine/internal/config"
	"github.com/spec-kit/sla-engine/internal/service"
	apperrors "github.com/spec-kit/sla-engine/pkg/util"
)

// SLAHandler serves SLA summaries and manual sweep triggers.
type SLAHandler struct {
	evaluations *service.EvaluationService
	sweepCfg    config.SweepConfig
}

// NewSLAHandler returns a new handler instance.
func NewSLAHandler(evaluations *service.EvaluationService, sweepCfg config.SweepConfig) *SLAHandler {
	return &SLAHandler{evaluations: evaluations, sweepCfg: sweepCfg}
}

// GetTicketSummary returns the live SLA summary for one ticket.
func (h *SLAHandler) GetTicketSummary(c *fiber.Ctx) error {
	ticketID := c.Params("id")
	if ticketID == "" {
		return apperrors.NewValidationError("ticket id required", nil)
	}

	summary, err := h.evaluations.GetSummary(c.UserContext(), ticketID, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSLASummaryResponse(ticketID, *summary))
}

// EvaluateTicket forces a full evaluation of one ticket.
func (h *SLAHandler) EvaluateTicket(c *fiber.Ctx) error {
	ticketID := c.Params("id")
	if ticketID == "" {
		return apperrors.NewValidationError("ticket id required", nil)
	}

	result, err := h.evaluations.EvaluateTicket(c.UserContext(), ticketID, time.Now())
	if err != nil {
		return err
	}

	response := fiber.Map{
		"summary":   dto.NewSLASummaryResponse(ticketID, result.Summary),
		"escalated": result.Decision != nil,
	}
	if result.Decision != nil {
		response["rule_id"] = result.Decision.Rule.ID
		response["urgency"] = result.Decision.Urgency
		response["reason"] = result.Decision.Reason
		response["message"] = result.Message
		if result.Assignee != nil {
			response["assignee_id"] = result.Assignee.ID
		}
	}
	return c.JSON(response)
}

// TriggerSweep runs one sweep cycle on demand.
func (h *SLAHandler) TriggerSweep(c *fiber.Ctx) error {
	stats, err := h.evaluations.EvaluateBatch(c.UserContext(), time.Now(), h.sweepCfg.Concurrency)
	if err != nil {
		return err
	}
	return c.JSON(dto.SweepResponse{
		Evaluated: stats.Evaluated,
		Breached:  stats.Breached,
		Escalated: stats.Escalated,
		Failed:    stats.Failed,
	})
}
