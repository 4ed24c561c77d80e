package tago

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/Yoon-jae-min/busalert/internal/config"
	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"github.com/Yoon-jae-min/busalert/internal/pkg/utils"
	"go.uber.org/zap"
)

const (
	// resultCodeOK is the envelope's documented success sentinel; the item
	// list must not be trusted unless the header carries it.
	resultCodeOK = "00"

	stationInfoService = "BusSttnInfoInqireService"
	arrivalInfoService = "ArvlInfoInqireService"
)

// Client is the national transit aggregator (TAGO) client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	serviceKey string
	logger     *zap.Logger
}

var _ repository.TransitRepository = (*Client)(nil)

func NewClient(cfg *config.ProvidersConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.TagoHost,
		serviceKey: cfg.PublicDataKey,
		logger:     logger,
	}
}

// HasCredential reports whether the public-data service key is configured.
func (c *Client) HasCredential() bool {
	return c.serviceKey != ""
}

// envelope is the common TAGO response wrapper.
type envelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items struct {
				Item itemList `json:"item"`
			} `json:"items"`
			TotalCount int `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

// itemList tolerates TAGO returning a single object instead of an array when
// exactly one item matches.
type itemList []json.RawMessage

func (l *itemList) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" || string(data) == `""` {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*l = raw
		return nil
	}
	*l = itemList{json.RawMessage(data)}
	return nil
}

// flexString tolerates numeric fields arriving as either strings or numbers.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	*s = flexString(data)
	return nil
}

func (s flexString) String() string { return string(s) }

func (s flexString) Int() (int, bool) {
	n, err := strconv.Atoi(string(s))
	return n, err == nil
}

func (s flexString) Float() (float64, bool) {
	f, err := strconv.ParseFloat(string(s), 64)
	return f, err == nil
}

type stationItem struct {
	NodeID   flexString `json:"nodeid"`
	NodeName flexString `json:"nodenm"`
	NodeNo   flexString `json:"nodeno"`
	GpsLati  flexString `json:"gpslati"`
	GpsLong  flexString `json:"gpslong"`
	CityCode flexString `json:"citycode"`
}

// FindStopByName resolves a stop name to its node id within a city. A miss is
// a nil result, not an error.
func (c *Client) FindStopByName(ctx context.Context, cityCode, name string) (*domain.StopRef, error) {
	params := url.Values{}
	params.Set("cityCode", cityCode)
	params.Set("nodeNm", name)
	params.Set("numOfRows", "10")
	params.Set("pageNo", "1")

	env, err := c.get(ctx, stationInfoService, "getSttnNoList", params)
	if err != nil {
		return nil, err
	}

	items, err := decodeItems[stationItem](env)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	ref := &domain.StopRef{
		StopID:   items[0].NodeID.String(),
		StopName: items[0].NodeName.String(),
		StopNo:   items[0].NodeNo.String(),
	}
	return ref, nil
}

// StopsNear lists stops around a GPS point (provider-fixed ~500m radius),
// sorted ascending by locally computed great-circle distance.
func (c *Client) StopsNear(ctx context.Context, latitude, longitude float64) ([]domain.BusStop, error) {
	params := url.Values{}
	params.Set("gpsLati", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("gpsLong", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("numOfRows", "50")
	params.Set("pageNo", "1")

	env, err := c.get(ctx, stationInfoService, "getCrdntPrxmtSttnList", params)
	if err != nil {
		return nil, err
	}

	items, err := decodeItems[stationItem](env)
	if err != nil {
		return nil, err
	}

	stops := make([]domain.BusStop, 0, len(items))
	for _, item := range items {
		lat, okLat := item.GpsLati.Float()
		lon, okLon := item.GpsLong.Float()
		if !okLat || !okLon {
			continue
		}

		distance := utils.HaversineDistance(latitude, longitude, lat, lon)
		stops = append(stops, domain.BusStop{
			ID:        item.NodeID.String(),
			Name:      item.NodeName.String(),
			Latitude:  lat,
			Longitude: lon,
			Distance:  &distance,
			CityCode:  item.CityCode.String(),
		})
	}

	sortStopsByDistance(stops)
	return stops, nil
}

// Arrivals fetches the raw per-bus records for a stop and normalises them
// into the per-route summary shape.
func (c *Client) Arrivals(ctx context.Context, cityCode, stopID string) ([]domain.BusArrival, error) {
	params := url.Values{}
	params.Set("cityCode", cityCode)
	params.Set("nodeId", stopID)

	env, err := c.get(ctx, arrivalInfoService, "getSttnAcctoArvlPrearngeInfoList", params)
	if err != nil {
		return nil, err
	}

	items, err := decodeItems[arrivalItem](env)
	if err != nil {
		return nil, err
	}

	return NormalizeArrivals(items), nil
}

type cityCodeItem struct {
	CityCode flexString `json:"citycode"`
	CityName flexString `json:"cityname"`
}

// CityCodes fetches the aggregator's city code catalogue.
func (c *Client) CityCodes(ctx context.Context) ([]domain.CityCodeList, error) {
	env, err := c.get(ctx, stationInfoService, "getCtyCodeList", url.Values{})
	if err != nil {
		return nil, err
	}

	items, err := decodeItems[cityCodeItem](env)
	if err != nil {
		return nil, err
	}

	codes := make([]domain.CityCodeList, 0, len(items))
	for _, item := range items {
		codes = append(codes, domain.CityCodeList{
			CityCode: item.CityCode.String(),
			CityName: item.CityName.String(),
		})
	}
	return codes, nil
}

func (c *Client) get(ctx context.Context, service, operation string, params url.Values) (*envelope, error) {
	if c.serviceKey == "" {
		return nil, fmt.Errorf("public data service key is not configured")
	}

	params.Set("serviceKey", c.serviceKey)
	params.Set("_type", "json")

	reqURL := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, service, operation, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("TAGO request failed",
			zap.String("operation", operation),
			zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("TAGO API returned error",
			zap.String("operation", operation),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("TAGO API error: status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if env.Response.Header.ResultCode != resultCodeOK {
		return nil, fmt.Errorf("TAGO API result code %q: %s",
			env.Response.Header.ResultCode, env.Response.Header.ResultMsg)
	}

	return &env, nil
}

func decodeItems[T any](env *envelope) ([]T, error) {
	items := make([]T, 0, len(env.Response.Body.Items.Item))
	for _, raw := range env.Response.Body.Items.Item {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("failed to decode item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func sortStopsByDistance(stops []domain.BusStop) {
	sort.SliceStable(stops, func(i, j int) bool {
		return *stops[i].Distance < *stops[j].Distance
	})
}
