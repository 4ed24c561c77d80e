package kakao_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Yoon-jae-min/busalert/internal/config"
	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/infrastructure/kakao"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *kakao.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return kakao.NewClient(&config.ProvidersConfig{
		KakaoRESTKey: "test-key",
		KakaoHost:    server.URL,
		Timeout:      5 * time.Second,
	}, zap.NewNop())
}

func TestClient_SearchStopsNear(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/local/search/keyword.json", r.URL.Path)
		assert.Equal(t, "KakaoAK test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "버스정류장", r.URL.Query().Get("query"))
		assert.Equal(t, "distance", r.URL.Query().Get("sort"))
		assert.Equal(t, "500", r.URL.Query().Get("radius"))

		fmt.Fprint(w, `{
			"documents": [
				{
					"id": "26338954",
					"place_name": "강남역 버스정류장",
					"x": "127.0276",
					"y": "37.4979",
					"road_address_name": "서울 강남구 강남대로 396",
					"distance": "42"
				},
				{
					"id": "bad",
					"place_name": "좌표없음",
					"x": "",
					"y": ""
				}
			]
		}`)
	})

	stops, err := client.SearchStopsNear(context.Background(), 37.4979, 127.0276, 500)
	require.NoError(t, err)
	require.Len(t, stops, 1)

	s := stops[0]
	assert.Equal(t, "26338954", s.ID)
	assert.Equal(t, "강남역 버스정류장", s.Name)
	assert.InDelta(t, 37.4979, s.Latitude, 0.0001)
	require.NotNil(t, s.Address)
	assert.Equal(t, "서울 강남구 강남대로 396", *s.Address)
	require.NotNil(t, s.Distance)
	assert.Equal(t, 42.0, *s.Distance)
}

func TestClient_SearchStops(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "강남역", r.URL.Query().Get("query"))
		assert.Equal(t, "SW8", r.URL.Query().Get("category_group_code"))
		fmt.Fprint(w, `{"documents": []}`)
	})

	stops, err := client.SearchStops(context.Background(), "강남역")
	require.NoError(t, err)
	assert.Empty(t, stops)
}

func TestClient_RouteDistance(t *testing.T) {
	t.Run("returns road distance", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/directions", r.URL.Path)
			fmt.Fprint(w, `{"routes": [{"summary": {"distance": 1234.5, "duration": 300}}]}`)
		})

		d, err := client.RouteDistance(
			context.Background(),
			domain.Coordinate{Latitude: 37.4979, Longitude: 127.0276},
			domain.Coordinate{Latitude: 37.5006, Longitude: 127.0364},
		)
		require.NoError(t, err)
		assert.Equal(t, 1234.5, d)
	})

	t.Run("no route is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"routes": []}`)
		})

		_, err := client.RouteDistance(
			context.Background(),
			domain.Coordinate{Latitude: 37.4979, Longitude: 127.0276},
			domain.Coordinate{Latitude: 37.5006, Longitude: 127.0364},
		)
		assert.Error(t, err)
	})
}

func TestClient_NoCredential(t *testing.T) {
	client := kakao.NewClient(&config.ProvidersConfig{
		KakaoHost: "http://localhost:0",
		Timeout:   time.Second,
	}, zap.NewNop())

	assert.False(t, client.HasCredential())

	_, err := client.SearchStops(context.Background(), "강남역")
	assert.Error(t, err)

	_, err = client.RouteDistance(context.Background(), domain.Coordinate{}, domain.Coordinate{})
	assert.Error(t, err)
}
