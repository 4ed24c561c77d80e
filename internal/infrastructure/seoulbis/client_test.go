package seoulbis_test

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
	"github.com/Yoon-jae-min/busalert/internal/infrastructure/seoulbis"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *seoulbis.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return seoulbis.NewClient(&config.ProvidersConfig{
		PublicDataKey: "test-key",
		SeoulBISHost:  server.URL,
		GyeonggiHost:  server.URL,
		Timeout:       5 * time.Second,
	}, zap.NewNop())
}

func TestClient_FindStopByName(t *testing.T) {
	t.Run("resolves station", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "stationinfo/getStationByName")
			assert.Equal(t, "강남역", r.URL.Query().Get("stSrch"))
			fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<ServiceResult>
	<msgHeader><resultCode>0</resultCode><resultMsg>정상적으로 처리되었습니다.</resultMsg></msgHeader>
	<msgBody>
		<itemList>
			<arsId>23284</arsId>
			<stationId>121000123</stationId>
			<stationNm>강남역</stationNm>
		</itemList>
	</msgBody>
</ServiceResult>`)
		})

		ref, err := client.FindStopByName(context.Background(), domain.RegionSeoul, "강남역")
		require.NoError(t, err)
		require.NotNil(t, ref)
		assert.Equal(t, "23284", ref.StopID)
		assert.Equal(t, "강남역", ref.StopName)
	})

	t.Run("miss returns nil", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<ServiceResult>
	<msgHeader><resultCode>0</resultCode></msgHeader>
	<msgBody></msgBody>
</ServiceResult>`)
		})

		ref, err := client.FindStopByName(context.Background(), domain.RegionSeoul, "없는정류장")
		require.NoError(t, err)
		assert.Nil(t, ref)
	})

	t.Run("error code surfaces", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<ServiceResult>
	<msgHeader><resultCode>7</resultCode><resultMsg>인증키 오류</resultMsg></msgHeader>
	<msgBody></msgBody>
</ServiceResult>`)
		})

		_, err := client.FindStopByName(context.Background(), domain.RegionSeoul, "강남역")
		assert.Error(t, err)
	})
}

func TestClient_Arrivals(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "arrive/getArrInfoByStop")
		assert.Equal(t, "121000123", r.URL.Query().Get("stId"))
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<ServiceResult>
	<msgHeader><resultCode>0</resultCode></msgHeader>
	<msgBody>
		<itemList>
			<busRouteId>100100046</busRouteId>
			<rtNm>146</rtNm>
			<routeType>간선버스</routeType>
			<arrmsg1>3분후[2번째 전]</arrmsg1>
			<arrmsg2>9분후[7번째 전]</arrmsg2>
			<locationNo1>2</locationNo1>
			<locationNo2>7</locationNo2>
			<lowPlate1>1</lowPlate1>
		</itemList>
		<itemList>
			<busRouteId>100100999</busRouteId>
			<rtNm>402</rtNm>
			<routeType>간선버스</routeType>
			<arrmsg1>운행종료</arrmsg1>
		</itemList>
	</msgBody>
</ServiceResult>`)
	})

	arrivals, err := client.Arrivals(context.Background(), domain.RegionSeoul, "121000123")
	require.NoError(t, err)
	require.Len(t, arrivals, 1)

	a := arrivals[0]
	assert.Equal(t, "100100046", a.RouteID)
	assert.Equal(t, "146", a.RouteName)
	assert.Equal(t, 180, a.ArrivalTime)
	require.NotNil(t, a.ArrivalTime2)
	assert.Equal(t, 540, *a.ArrivalTime2)
	assert.True(t, a.LowPlate)
}

func TestClient_NoCredential(t *testing.T) {
	client := seoulbis.NewClient(&config.ProvidersConfig{
		SeoulBISHost: "http://localhost:0",
		Timeout:      time.Second,
	}, zap.NewNop())

	assert.False(t, client.HasCredential())
	_, err := client.Arrivals(context.Background(), domain.RegionSeoul, "121000123")
	assert.Error(t, err)
}
