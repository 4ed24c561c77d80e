package handler

import (
	"strconv"

	"github.com/Yoon-jae-min/busalert/internal/pkg/errors"
	"github.com/Yoon-jae-min/busalert/internal/pkg/utils"
	"github.com/Yoon-jae-min/busalert/internal/pkg/validator"
	"github.com/Yoon-jae-min/busalert/internal/usecase"
	"github.com/Yoon-jae-min/busalert/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AlertHandler struct {
	alertUC *usecase.AlertUseCase
	logger  *zap.Logger
}

func NewAlertHandler(alertUC *usecase.AlertUseCase, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{
		alertUC: alertUC,
		logger:  logger,
	}
}

// Schedule plans a departure and registers it as an alert. A 409 means the
// chosen bus can no longer be caught.
func (h *AlertHandler) Schedule(c *fiber.Ctx) error {
	var req dto.ScheduleAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.alertUC.Schedule(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{Data: result})
}

func (h *AlertHandler) History(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	result, err := h.alertUC.History(c.Context(), limit)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result)})
}
