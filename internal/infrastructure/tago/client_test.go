package tago_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Yoon-jae-min/busalert/internal/config"
	"github.com/Yoon-jae-min/busalert/internal/infrastructure/tago"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *tago.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return tago.NewClient(&config.ProvidersConfig{
		PublicDataKey: "test-key",
		TagoHost:      server.URL,
		Timeout:       5 * time.Second,
	}, zap.NewNop())
}

func envelope(itemsJSON string) string {
	return fmt.Sprintf(`{
		"response": {
			"header": {"resultCode": "00", "resultMsg": "NORMAL SERVICE."},
			"body": {"items": {"item": %s}, "totalCount": 1}
		}
	}`, itemsJSON)
}

func TestClient_FindStopByName(t *testing.T) {
	t.Run("single object item", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "getSttnNoList")
			assert.Equal(t, "11", r.URL.Query().Get("cityCode"))
			assert.Equal(t, "강남역", r.URL.Query().Get("nodeNm"))
			fmt.Fprint(w, envelope(`{"nodeid": "ICB164000001", "nodenm": "강남역", "nodeno": 23284}`))
		})

		ref, err := client.FindStopByName(context.Background(), "11", "강남역")
		require.NoError(t, err)
		require.NotNil(t, ref)
		assert.Equal(t, "ICB164000001", ref.StopID)
		assert.Equal(t, "강남역", ref.StopName)
		assert.Equal(t, "23284", ref.StopNo)
	})

	t.Run("array picks the first item", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, envelope(`[
				{"nodeid": "A1", "nodenm": "강남역", "nodeno": "1"},
				{"nodeid": "A2", "nodenm": "강남역.2", "nodeno": "2"}
			]`))
		})

		ref, err := client.FindStopByName(context.Background(), "11", "강남역")
		require.NoError(t, err)
		require.NotNil(t, ref)
		assert.Equal(t, "A1", ref.StopID)
	})

	t.Run("miss returns nil without error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, envelope(`""`))
		})

		ref, err := client.FindStopByName(context.Background(), "11", "없는정류장")
		require.NoError(t, err)
		assert.Nil(t, ref)
	})

	t.Run("provider error code surfaces", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"response": {"header": {"resultCode": "30", "resultMsg": "SERVICE KEY IS NOT REGISTERED"}, "body": {}}}`)
		})

		_, err := client.FindStopByName(context.Background(), "11", "강남역")
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "30"))
	})
}

func TestClient_StopsNear(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "getCrdntPrxmtSttnList")
		fmt.Fprint(w, envelope(`[
			{"nodeid": "FAR", "nodenm": "선릉역", "gpslati": 37.5045, "gpslong": 127.0490, "citycode": 11},
			{"nodeid": "NEAR", "nodenm": "강남역", "gpslati": 37.4979, "gpslong": 127.0276, "citycode": 11}
		]`))
	})

	stops, err := client.StopsNear(context.Background(), 37.4979, 127.0276)
	require.NoError(t, err)
	require.Len(t, stops, 2)

	assert.Equal(t, "NEAR", stops[0].ID)
	assert.Equal(t, "FAR", stops[1].ID)
	require.NotNil(t, stops[0].Distance)
	assert.InDelta(t, 0, *stops[0].Distance, 1)
	assert.Equal(t, "11", stops[0].CityCode)
}

func TestClient_Arrivals(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "getSttnAcctoArvlPrearngeInfoList")
		assert.Equal(t, "ICB164000001", r.URL.Query().Get("nodeId"))
		fmt.Fprint(w, envelope(`[
			{"routeid": "R146", "routeno": 146, "routetp": "간선버스", "arrtime": 300, "arrprevstationcnt": 5, "vehicletp": "일반버스"},
			{"routeid": "R146", "routeno": 146, "routetp": "간선버스", "arrtime": 120, "arrprevstationcnt": 2, "vehicletp": "저상버스"}
		]`))
	})

	arrivals, err := client.Arrivals(context.Background(), "11", "ICB164000001")
	require.NoError(t, err)
	require.Len(t, arrivals, 1)

	assert.Equal(t, 120, arrivals[0].ArrivalTime)
	require.NotNil(t, arrivals[0].ArrivalTime2)
	assert.Equal(t, 300, *arrivals[0].ArrivalTime2)
	assert.True(t, arrivals[0].LowPlate)
}

func TestClient_CityCodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "getCtyCodeList")
		fmt.Fprint(w, envelope(`[
			{"citycode": 11, "cityname": "서울특별시"},
			{"citycode": 26, "cityname": "부산광역시"}
		]`))
	})

	codes, err := client.CityCodes(context.Background())
	require.NoError(t, err)
	require.Len(t, codes, 2)
	assert.Equal(t, "11", codes[0].CityCode)
	assert.Equal(t, "서울특별시", codes[0].CityName)
}

func TestClient_NoCredential(t *testing.T) {
	client := tago.NewClient(&config.ProvidersConfig{
		TagoHost: "http://localhost:0",
		Timeout:  time.Second,
	}, zap.NewNop())

	assert.False(t, client.HasCredential())
	_, err := client.FindStopByName(context.Background(), "11", "강남역")
	assert.Error(t, err)
}
