package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yoon-jae-min/busalert/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestDetectRegion(t *testing.T) {
	tests := []struct {
		name string
		lat  *float64
		lon  *float64
		want domain.Region
	}{
		{"gangnam is seoul", ptr(37.4979), ptr(127.0276), domain.RegionSeoul},
		{"incheon before gyeonggi", ptr(37.45), ptr(126.70), domain.RegionIncheon},
		{"suwon is gyeonggi", ptr(37.26), ptr(127.02), domain.RegionGyeonggi},
		{"haeundae is busan", ptr(35.16), ptr(129.16), domain.RegionBusan},
		{"daegu", ptr(35.87), ptr(128.60), domain.RegionDaegu},
		{"gwangju", ptr(35.15), ptr(126.85), domain.RegionGwangju},
		{"daejeon", ptr(36.35), ptr(127.38), domain.RegionDaejeon},
		{"open sea defaults to seoul", ptr(34.0), ptr(125.0), domain.RegionSeoul},
		{"missing latitude", nil, ptr(127.0), domain.RegionSeoul},
		{"missing both", nil, nil, domain.RegionSeoul},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DetectRegion(tt.lat, tt.lon))
		})
	}
}

func TestMatchesAnyRegionBox(t *testing.T) {
	assert.True(t, domain.MatchesAnyRegionBox(37.4979, 127.0276))
	assert.False(t, domain.MatchesAnyRegionBox(34.0, 125.0))
}

func TestRegionCityCode(t *testing.T) {
	assert.Equal(t, "11", domain.RegionSeoul.CityCode())
	assert.Equal(t, "41", domain.RegionGyeonggi.CityCode())
	assert.Equal(t, "26", domain.RegionBusan.CityCode())
	assert.Equal(t, "50", domain.RegionJeju.CityCode())
	assert.Equal(t, "11", domain.Region("atlantis").CityCode())
}

func TestHasRegionalBIS(t *testing.T) {
	assert.True(t, domain.RegionSeoul.HasRegionalBIS())
	assert.True(t, domain.RegionGyeonggi.HasRegionalBIS())
	assert.False(t, domain.RegionBusan.HasRegionalBIS())
	assert.False(t, domain.RegionIncheon.HasRegionalBIS())
}

func TestWalkingDuration(t *testing.T) {
	assert.Equal(t, 0, domain.WalkingDuration(0, 1.11))
	assert.Equal(t, 1, domain.WalkingDuration(1, 1.11))
	assert.Equal(t, 901, domain.WalkingDuration(1000, 1.11))
	assert.Equal(t, 0, domain.WalkingDuration(500, 0))
}
