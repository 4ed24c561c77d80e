package usecase

import (
	"context"
	"time"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/pkg/errors"
	"github.com/Yoon-jae-min/busalert/internal/pkg/utils"
	"github.com/Yoon-jae-min/busalert/internal/usecase/dto"
	"go.uber.org/zap"
)

type PlannerUseCase struct {
	arrivalUC     *ArrivalUseCase
	walkingUC     *WalkingUseCase
	marginSeconds int
	logger        *zap.Logger

	// now is injected for tests.
	now func() time.Time
}

func NewPlannerUseCase(
	arrivalUC *ArrivalUseCase,
	walkingUC *WalkingUseCase,
	marginSeconds int,
	logger *zap.Logger,
) *PlannerUseCase {
	return &PlannerUseCase{
		arrivalUC:     arrivalUC,
		walkingUC:     walkingUC,
		marginSeconds: marginSeconds,
		logger:        logger,
		now:           time.Now,
	}
}

// PlanDeparture answers "when do I have to leave" for one chosen bus: look up
// the live arrival for the route, estimate the walk to the stop, and subtract
// walk plus a safety margin from the arrival countdown.
func (uc *PlannerUseCase) PlanDeparture(ctx context.Context, req dto.PlanRequest) (*dto.PlanResponse, error) {
	if !utils.ValidateCoordinates(req.FromLat, req.FromLon) ||
		!utils.ValidateCoordinates(req.StopLat, req.StopLon) {
		return nil, errors.ErrInvalidCoordinates
	}

	board, err := uc.arrivalUC.GetArrivals(ctx, dto.ArrivalsRequest{
		StopID:   req.StopID,
		StopName: req.StopName,
		Lat:      req.Lat,
		Lon:      req.Lon,
	})
	if err != nil {
		return nil, err
	}

	var arrival *dto.ArrivalResponse
	for i := range board.Arrivals {
		if board.Arrivals[i].RouteID == req.RouteID {
			arrival = &board.Arrivals[i]
			break
		}
	}
	if arrival == nil {
		return nil, errors.ErrStopNotFound.WithDetails(map[string]interface{}{
			"route_id": req.RouteID,
		})
	}

	arrivalTime := arrival.ArrivalTime
	if req.BusChoice == 2 {
		if arrival.ArrivalTime2 == nil {
			return dto.ConvertPlan(&domain.DeparturePlan{
				Outcome:       domain.OutcomeUnknown,
				MarginSeconds: uc.margin(req),
			}), nil
		}
		arrivalTime = *arrival.ArrivalTime2
	}

	walking := uc.walkingUC.Estimate(ctx, dto.WalkingRequest{
		FromLat: req.FromLat,
		FromLon: req.FromLon,
		ToLat:   req.StopLat,
		ToLon:   req.StopLon,
	})

	plan := uc.Plan(arrivalTime, walking, uc.margin(req))
	return dto.ConvertPlan(plan), nil
}

// Plan applies the departure formula to already-resolved inputs.
func (uc *PlannerUseCase) Plan(arrivalTime int, walking domain.WalkingRoute, margin int) *domain.DeparturePlan {
	plan := &domain.DeparturePlan{
		ArrivalTime:     arrivalTime,
		WalkingDuration: walking.Duration,
		MarginSeconds:   margin,
	}

	if walking.Duration <= 0 && walking.Distance <= 0 {
		plan.Outcome = domain.OutcomeUnknown
		return plan
	}

	// Zero slack counts as too late: the user cannot leave "now" and still
	// make the bus once the walk and margin are spent.
	departIn := arrivalTime - walking.Duration - margin
	if departIn <= 0 {
		plan.Outcome = domain.OutcomeTooLate
		return plan
	}

	plan.Outcome = domain.OutcomeDepart
	plan.DepartInSeconds = departIn
	departAt := uc.now().Add(time.Duration(departIn) * time.Second)
	plan.DepartAt = &departAt
	return plan
}

func (uc *PlannerUseCase) margin(req dto.PlanRequest) int {
	if req.Margin != nil {
		return *req.Margin
	}
	return uc.marginSeconds
}
