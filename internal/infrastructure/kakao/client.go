package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Yoon-jae-min/busalert/internal/config"
	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	// categoryBusStop is Kakao Local's category group code for bus stops.
	categoryBusStop = "SW8"
	defaultPageSize = 15
)

// Client is the Kakao Local / Mobility client. It serves both the
// place-search and the directions surface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	restKey    string
	logger     *zap.Logger
}

func NewClient(cfg *config.ProvidersConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.KakaoHost,
		restKey:    cfg.KakaoRESTKey,
		logger:     logger,
	}
}

var (
	_ repository.PlaceSearchRepository = (*Client)(nil)
	_ repository.DirectionsRepository  = (*Client)(nil)
)

// HasCredential reports whether a REST key is configured.
func (c *Client) HasCredential() bool {
	return c.restKey != ""
}

type placeDocument struct {
	ID          string `json:"id"`
	PlaceName   string `json:"place_name"`
	X           string `json:"x"` // longitude
	Y           string `json:"y"` // latitude
	AddressName string `json:"address_name"`
	RoadAddress string `json:"road_address_name"`
	Distance    string `json:"distance"` // meters from the search center
}

type placeSearchResponse struct {
	Documents []placeDocument `json:"documents"`
}

// SearchStops searches bus stops by keyword.
func (c *Client) SearchStops(ctx context.Context, query string) ([]domain.BusStop, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("category_group_code", categoryBusStop)
	params.Set("size", strconv.Itoa(defaultPageSize))

	return c.searchPlaces(ctx, params)
}

// SearchStopsNear searches bus stops around a coordinate, sorted by distance
// by the provider.
func (c *Client) SearchStopsNear(ctx context.Context, latitude, longitude float64, radiusMeters int) ([]domain.BusStop, error) {
	params := url.Values{}
	params.Set("query", "버스정류장")
	params.Set("x", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("y", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("radius", strconv.Itoa(radiusMeters))
	params.Set("size", strconv.Itoa(defaultPageSize))
	params.Set("sort", "distance")

	return c.searchPlaces(ctx, params)
}

func (c *Client) searchPlaces(ctx context.Context, params url.Values) ([]domain.BusStop, error) {
	if c.restKey == "" {
		return nil, fmt.Errorf("kakao REST key is not configured")
	}

	reqURL := fmt.Sprintf("%s/v2/local/search/keyword.json?%s", c.baseURL, params.Encode())

	var resp placeSearchResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	stops := make([]domain.BusStop, 0, len(resp.Documents))
	for _, doc := range resp.Documents {
		lat, err := strconv.ParseFloat(doc.Y, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(doc.X, 64)
		if err != nil {
			continue
		}

		stop := domain.BusStop{
			ID:        doc.ID,
			Name:      doc.PlaceName,
			Latitude:  lat,
			Longitude: lon,
		}
		if addr := firstNonEmpty(doc.RoadAddress, doc.AddressName); addr != "" {
			stop.Address = &addr
		}
		if doc.Distance != "" {
			if d, err := strconv.ParseFloat(doc.Distance, 64); err == nil {
				stop.Distance = &d
			}
		}

		stops = append(stops, stop)
	}

	return stops, nil
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

// RouteDistance queries the car directions API and returns the road distance
// in meters. Kakao has no pedestrian routing, so the car-route distance is
// reused as a walking-distance proxy by the caller.
func (c *Client) RouteDistance(ctx context.Context, from, to domain.Coordinate) (float64, error) {
	if c.restKey == "" {
		return 0, fmt.Errorf("kakao REST key is not configured")
	}

	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", from.Longitude, from.Latitude))
	params.Set("destination", fmt.Sprintf("%f,%f", to.Longitude, to.Latitude))

	reqURL := fmt.Sprintf("%s/v1/directions?%s", c.baseURL, params.Encode())

	var resp directionsResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return 0, err
	}

	if len(resp.Routes) == 0 || resp.Routes[0].Summary.Distance <= 0 {
		return 0, fmt.Errorf("kakao directions returned no route")
	}

	return resp.Routes[0].Summary.Distance, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.restKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Kakao request failed", zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Kakao API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("kakao API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
