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

type FavoriteHandler struct {
	favoriteUC *usecase.FavoriteUseCase
	logger     *zap.Logger
}

func NewFavoriteHandler(favoriteUC *usecase.FavoriteUseCase, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUC: favoriteUC,
		logger:     logger,
	}
}

func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	result, err := h.favoriteUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result)})
}

func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	var req dto.FavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.favoriteUC.Add(c.Context(), req); err != nil {
		return utils.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{
		Data: fiber.Map{"stop_id": req.StopID},
	})
}

func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	stopID := c.Params("id")
	if stopID == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.favoriteUC.Remove(c.Context(), stopID); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"stop_id": stopID}, nil)
}
