package seoulbis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArrivalSeconds(t *testing.T) {
	tests := []struct {
		name    string
		arrMsg  string
		arrTime string
		want    int
	}{
		{"numeric arrtime wins", "5분후 도착", "287", 287},
		{"zero arrtime is valid", "곧 도착", "0", 0},
		{"negative arrtime falls back to message", "3분후 도착", "-1", 180},
		{"arriving soon", "곧 도착", "", 0},
		{"arriving", "2번째 전 도착", "", 0},
		{"service ended", "운행종료", "", -1},
		{"minutes", "7분후[3번째 전]", "", 420},
		{"minutes with space", "12 분", "", 720},
		{"seconds", "40초후 도착", "", 40},
		{"plain seconds", "55초", "", 55},
		{"empty", "", "", 0},
		{"unparsable", "출발대기", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseArrivalSeconds(tt.arrMsg, tt.arrTime))
		})
	}
}

func TestParseArrivalItems(t *testing.T) {
	t.Run("drops ended routes", func(t *testing.T) {
		items := []itemXML{
			{BusRouteID: "100100046", RtNm: "146", RouteType: "간선버스", ArrMsg1: "운행종료"},
			{BusRouteID: "100100050", RtNm: "241", RouteType: "간선버스", ArrMsg1: "3분후 도착", LocationNo1: "2"},
		}

		arrivals := parseArrivalItems(items)
		require.Len(t, arrivals, 1)
		assert.Equal(t, "100100050", arrivals[0].RouteID)
		assert.Equal(t, 180, arrivals[0].ArrivalTime)
		require.NotNil(t, arrivals[0].LocationNo1)
		assert.Equal(t, 2, *arrivals[0].LocationNo1)
	})

	t.Run("second bus only when still running", func(t *testing.T) {
		items := []itemXML{
			{
				BusRouteID: "100100046", RtNm: "146", RouteType: "간선버스",
				ArrMsg1: "곧 도착", ArrMsg2: "운행종료",
			},
			{
				BusRouteID: "100100050", RtNm: "241", RouteType: "간선버스",
				ArrTime1: "120", ArrTime2: "540",
			},
		}

		arrivals := parseArrivalItems(items)
		require.Len(t, arrivals, 2)

		assert.Nil(t, arrivals[0].ArrivalTime2)
		require.NotNil(t, arrivals[1].ArrivalTime2)
		assert.Equal(t, 540, *arrivals[1].ArrivalTime2)
	})

	t.Run("low plate from any signal", func(t *testing.T) {
		items := []itemXML{
			{BusRouteID: "A", RtNm: "146", ArrTime1: "60", LowPlate1: "1"},
			{BusRouteID: "B", RtNm: "241", ArrTime1: "60", LowPlate2: "1"},
			{BusRouteID: "C", RtNm: "463", ArrTime1: "60", LowPlate: "1"},
			{BusRouteID: "D", RtNm: "360", ArrTime1: "60", LowPlate1: "0"},
		}

		arrivals := parseArrivalItems(items)
		require.Len(t, arrivals, 4)

		byRoute := make(map[string]bool)
		for _, a := range arrivals {
			byRoute[a.RouteID] = a.LowPlate
		}
		assert.True(t, byRoute["A"])
		assert.True(t, byRoute["B"])
		assert.True(t, byRoute["C"])
		assert.False(t, byRoute["D"])
	})

	t.Run("falls back to arsId when route id missing", func(t *testing.T) {
		items := []itemXML{
			{ArsID: "23284", RtNm: "146", ArrTime1: "60"},
		}

		arrivals := parseArrivalItems(items)
		require.Len(t, arrivals, 1)
		assert.Equal(t, "23284", arrivals[0].RouteID)
	})

	t.Run("display order", func(t *testing.T) {
		items := []itemXML{
			{BusRouteID: "V", RtNm: "02", RouteType: "마을버스", ArrTime1: "60"},
			{BusRouteID: "T", RtNm: "146", RouteType: "간선버스", ArrTime1: "60"},
		}

		arrivals := parseArrivalItems(items)
		require.Len(t, arrivals, 2)
		assert.Equal(t, "146", arrivals[0].RouteName)
		assert.Equal(t, "02", arrivals[1].RouteName)
	})
}
