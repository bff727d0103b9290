package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-engine/internal/api/dto"
	"github.com/spec-kit/sla-engine/internal/service"
)

// RulesHandler serves the configured escalation rules.
type RulesHandler struct {
	evaluations *service.EvaluationService
}

// NewRulesHandler returns a new handler instance.
func NewRulesHandler(evaluations *service.EvaluationService) *RulesHandler {
	return &RulesHandler{evaluations: evaluations}
}

// List returns all escalation rules in evaluation order.
func (h *RulesHandler) List(c *fiber.Ctx) error {
	rules, err := h.evaluations.ListRules(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"rules": dto.NewRuleResponses(rules)})
}
