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

type SettingsHandler struct {
	settingsUC *usecase.SettingsUseCase
	logger     *zap.Logger
}

func NewSettingsHandler(settingsUC *usecase.SettingsUseCase, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsUC: settingsUC,
		logger:     logger,
	}
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.settingsUC.Get(c.Context()), nil)
}

func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req dto.SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.settingsUC.Update(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}
