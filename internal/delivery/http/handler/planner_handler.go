package handler

import (
	"github.com/Yoon-jae-min/busalert/internal/pkg/errors"
	"github.com/Yoon-jae-min/busalert/internal/pkg/utils"
	"github.com/Yoon-jae-min/busalert/internal/pkg/validator"
	"github.com/Yoon-jae-min/busalert/internal/usecase"
	"github.com/Yoon-jae-min/busalert/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PlannerHandler struct {
	plannerUC *usecase.PlannerUseCase
	walkingUC *usecase.WalkingUseCase
	logger    *zap.Logger
}

func NewPlannerHandler(
	plannerUC *usecase.PlannerUseCase,
	walkingUC *usecase.WalkingUseCase,
	logger *zap.Logger,
) *PlannerHandler {
	return &PlannerHandler{
		plannerUC: plannerUC,
		walkingUC: walkingUC,
		logger:    logger,
	}
}

// WalkingRoute estimates walking distance and time between two points.
func (h *PlannerHandler) WalkingRoute(c *fiber.Ctx) error {
	var req dto.WalkingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result := h.walkingUC.EstimateWalkingRoute(c.Context(), req)
	return utils.SendSuccess(c, result, &utils.Meta{Source: result.Source})
}

// Plan answers when the user has to leave for a chosen bus.
func (h *PlannerHandler) Plan(c *fiber.Ctx) error {
	var req dto.PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.plannerUC.PlanDeparture(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
