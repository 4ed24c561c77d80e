package seoulbis

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Yoon-jae-min/busalert/internal/config"
	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"go.uber.org/zap"
)

// resultCodeOK is the BIS envelope success sentinel.
const resultCodeOK = "0"

// Client talks to the region-specific bus information system feeds
// (Seoul and Gyeonggi). These are the historical regional providers, used
// ahead of the national aggregator when a credential is configured.
type Client struct {
	httpClient   *http.Client
	seoulHost    string
	gyeonggiHost string
	serviceKey   string
	logger       *zap.Logger
}

var _ repository.RegionalBISRepository = (*Client)(nil)

func NewClient(cfg *config.ProvidersConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		seoulHost:    cfg.SeoulBISHost,
		gyeonggiHost: cfg.GyeonggiHost,
		serviceKey:   cfg.PublicDataKey,
		logger:       logger,
	}
}

// HasCredential reports whether the shared public-data key is configured.
// The regional feeds accept the same key as the national aggregator.
func (c *Client) HasCredential() bool {
	return c.serviceKey != ""
}

func (c *Client) hostFor(region domain.Region) string {
	if region == domain.RegionGyeonggi {
		return c.gyeonggiHost
	}
	return c.seoulHost
}

type serviceResult struct {
	XMLName   xml.Name `xml:"ServiceResult"`
	MsgHeader struct {
		ResultCode string `xml:"resultCode"`
		ResultMsg  string `xml:"resultMsg"`
	} `xml:"msgHeader"`
	MsgBody struct {
		Items []itemXML `xml:"itemList"`
	} `xml:"msgBody"`
}

type itemXML struct {
	ArsID       string `xml:"arsId"`
	StationID   string `xml:"stationId"`
	StationNm   string `xml:"stationNm"`
	BusRouteID  string `xml:"busRouteId"`
	RtNm        string `xml:"rtNm"`
	RouteType   string `xml:"routeType"`
	ArrMsg1     string `xml:"arrmsg1"`
	ArrMsg2     string `xml:"arrmsg2"`
	ArrTime1    string `xml:"arrtime1"`
	ArrTime2    string `xml:"arrtime2"`
	ArrTime     string `xml:"arrtime"`
	LocationNo1 string `xml:"locationNo1"`
	LocationNo2 string `xml:"locationNo2"`
	LowPlate1   string `xml:"lowPlate1"`
	LowPlate2   string `xml:"lowPlate2"`
	LowPlate    string `xml:"lowPlate"`
}

// FindStopByName resolves a stop name to the regional station id. A miss is
// a nil result, not an error.
func (c *Client) FindStopByName(ctx context.Context, region domain.Region, name string) (*domain.StopRef, error) {
	params := url.Values{}
	params.Set("stSrch", name)

	result, err := c.get(ctx, region, "stationinfo/getStationByName", params)
	if err != nil {
		return nil, err
	}

	if len(result.MsgBody.Items) == 0 {
		return nil, nil
	}

	item := result.MsgBody.Items[0]
	stationID := item.ArsID
	if stationID == "" {
		stationID = item.StationID
	}

	return &domain.StopRef{
		StopID:   stationID,
		StopName: item.StationNm,
	}, nil
}

// Arrivals fetches and normalises the arrival list for a station. The BIS
// feed reports one record per route with free-text countdown messages; the
// parser in parse.go turns those into seconds.
func (c *Client) Arrivals(ctx context.Context, region domain.Region, stopID string) ([]domain.BusArrival, error) {
	params := url.Values{}
	params.Set("stId", stopID)

	result, err := c.get(ctx, region, "arrive/getArrInfoByStop", params)
	if err != nil {
		return nil, err
	}

	return parseArrivalItems(result.MsgBody.Items), nil
}

func (c *Client) get(ctx context.Context, region domain.Region, path string, params url.Values) (*serviceResult, error) {
	if c.serviceKey == "" {
		return nil, fmt.Errorf("public data service key is not configured")
	}

	params.Set("serviceKey", c.serviceKey)
	reqURL := fmt.Sprintf("%s/%s?%s", c.hostFor(region), path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("BIS request failed",
			zap.String("region", string(region)),
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("BIS API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("BIS API error: status %d", resp.StatusCode)
	}

	var result serviceResult
	if err := xml.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if result.MsgHeader.ResultCode != resultCodeOK {
		return nil, fmt.Errorf("BIS API result code %q: %s",
			result.MsgHeader.ResultCode, result.MsgHeader.ResultMsg)
	}

	return &result, nil
}
