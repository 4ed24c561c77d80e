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

type StopHandler struct {
	stopUC *usecase.StopUseCase
	logger *zap.Logger
}

func NewStopHandler(stopUC *usecase.StopUseCase, logger *zap.Logger) *StopHandler {
	return &StopHandler{
		stopUC: stopUC,
		logger: logger,
	}
}

// Search resolves a stop by exact name (?name=, optional ?lat=&lon= for
// region selection) or runs a keyword search (?q=).
func (h *StopHandler) Search(c *fiber.Ctx) error {
	if q := c.Query("q"); q != "" {
		result, err := h.stopUC.SearchStops(c.Context(), q)
		if err != nil {
			return utils.SendError(c, err)
		}
		return utils.SendSuccess(c, result, &utils.Meta{
			Total:  len(result.Stops),
			Source: result.Source,
		})
	}

	req := dto.StopSearchRequest{
		Name: c.Query("name"),
		Lat:  queryFloat(c, "lat"),
		Lon:  queryFloat(c, "lon"),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	ref, err := h.stopUC.FindStopByName(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	if ref == nil {
		return utils.SendError(c, errors.ErrStopNotFound)
	}

	return utils.SendSuccess(c, ref, nil)
}

// Nearby lists stops around a coordinate, nearest first.
func (h *StopHandler) Nearby(c *fiber.Ctx) error {
	var req dto.NearbyStopsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.stopUC.FindStopsNear(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:  len(result.Stops),
		Source: result.Source,
	})
}
