package handler

import (
	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"github.com/Yoon-jae-min/busalert/internal/pkg/errors"
	"github.com/Yoon-jae-min/busalert/internal/pkg/utils"
	"github.com/Yoon-jae-min/busalert/internal/usecase"
	"github.com/Yoon-jae-min/busalert/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ArrivalHandler struct {
	arrivalUC  *usecase.ArrivalUseCase
	streamRepo repository.StreamRepository
	regionUC   *usecase.RegionUseCase
	logger     *zap.Logger
}

func NewArrivalHandler(
	arrivalUC *usecase.ArrivalUseCase,
	streamRepo repository.StreamRepository,
	regionUC *usecase.RegionUseCase,
	logger *zap.Logger,
) *ArrivalHandler {
	return &ArrivalHandler{
		arrivalUC:  arrivalUC,
		streamRepo: streamRepo,
		regionUC:   regionUC,
		logger:     logger,
	}
}

// Arrivals answers the live arrival board for a stop. Optional ?name= lets
// the regional feed resolve its own station id; ?lat=&lon= pick the region.
func (h *ArrivalHandler) Arrivals(c *fiber.Ctx) error {
	stopID := c.Params("id")
	if stopID == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	req := dto.ArrivalsRequest{
		StopID:   stopID,
		StopName: c.Query("name"),
		Lat:      queryFloat(c, "lat"),
		Lon:      queryFloat(c, "lon"),
	}

	result, err := h.arrivalUC.GetArrivals(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:  len(result.Arrivals),
		Source: result.Source,
	})
}

// Watch asks the refresh worker to keep this stop's board warm.
func (h *ArrivalHandler) Watch(c *fiber.Ctx) error {
	stopID := c.Params("id")
	if stopID == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	lat := queryFloat(c, "lat")
	lon := queryFloat(c, "lon")

	// No point keeping a board warm when no credentialed provider serves
	// the region; live refreshes would never produce data.
	if !h.regionUC.IsRegionSupported(domain.DetectRegion(lat, lon)) {
		return utils.SendError(c, errors.ErrRegionNotSupported)
	}

	event := domain.WatchEvent{
		StopID:   stopID,
		StopName: c.Query("name"),
		Lat:      lat,
		Lon:      lon,
	}
	if err := h.streamRepo.Publish(c.Context(), domain.StreamStopWatch, event); err != nil {
		h.logger.Error("Failed to publish watch event",
			zap.String("stop_id", stopID),
			zap.Error(err))
		return utils.SendError(c, errors.ErrCacheError)
	}

	return utils.SendSuccess(c, fiber.Map{"watching": stopID}, nil)
}

// Unwatch cancels a previous watch.
func (h *ArrivalHandler) Unwatch(c *fiber.Ctx) error {
	stopID := c.Params("id")
	if stopID == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	event := domain.WatchEvent{StopID: stopID, Unwatch: true}
	if err := h.streamRepo.Publish(c.Context(), domain.StreamStopWatch, event); err != nil {
		h.logger.Error("Failed to publish unwatch event",
			zap.String("stop_id", stopID),
			zap.Error(err))
		return utils.SendError(c, errors.ErrCacheError)
	}

	return utils.SendSuccess(c, fiber.Map{"watching": nil}, nil)
}
