package handler

import (
	"strconv"

	"github.com/Yoon-jae-min/busalert/internal/pkg/errors"
	"github.com/Yoon-jae-min/busalert/internal/pkg/utils"
	"github.com/Yoon-jae-min/busalert/internal/usecase"
	"github.com/Yoon-jae-min/busalert/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RegionHandler struct {
	regionUC *usecase.RegionUseCase
	logger   *zap.Logger
}

func NewRegionHandler(regionUC *usecase.RegionUseCase, logger *zap.Logger) *RegionHandler {
	return &RegionHandler{
		regionUC: regionUC,
		logger:   logger,
	}
}

// Classify maps ?lat=&lon= to a service region. Both parameters are optional;
// omitting them answers with the default region.
func (h *RegionHandler) Classify(c *fiber.Ctx) error {
	req := dto.RegionRequest{
		Lat: queryFloat(c, "lat"),
		Lon: queryFloat(c, "lon"),
	}

	result := h.regionUC.Classify(req)
	return utils.SendSuccess(c, result, nil)
}

// CityCode resolves ?lat=&lon= to a transit city code via the aggregator.
func (h *RegionHandler) CityCode(c *fiber.Ctx) error {
	lat := queryFloat(c, "lat")
	lon := queryFloat(c, "lon")
	if lat == nil || lon == nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	code := h.regionUC.CityCodeFromCoordinate(c.Context(), *lat, *lon)
	if code == nil {
		// Fall back to the static box classification.
		result := h.regionUC.Classify(dto.RegionRequest{Lat: lat, Lon: lon})
		return utils.SendSuccess(c, fiber.Map{"city_code": result.CityCode, "resolved": false}, nil)
	}

	return utils.SendSuccess(c, fiber.Map{"city_code": *code, "resolved": true}, nil)
}

func queryFloat(c *fiber.Ctx, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
