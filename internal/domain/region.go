package domain

// Region is a coarse administrative area used to pick which transit provider
// applies to a coordinate.
type Region string

const (
	RegionSeoul    Region = "seoul"
	RegionGyeonggi Region = "gyeonggi"
	RegionIncheon  Region = "incheon"
	RegionBusan    Region = "busan"
	RegionDaegu    Region = "daegu"
	RegionGwangju  Region = "gwangju"
	RegionDaejeon  Region = "daejeon"
	RegionUlsan    Region = "ulsan"
	RegionGangwon  Region = "gangwon"
	RegionChungbuk Region = "chungbuk"
	RegionChungnam Region = "chungnam"
	RegionJeonbuk  Region = "jeonbuk"
	RegionJeonnam  Region = "jeonnam"
	RegionGyeongbuk Region = "gyeongbuk"
	RegionGyeongnam Region = "gyeongnam"
	RegionJeju     Region = "jeju"
)

// DefaultRegion is used when coordinates are missing or match no box.
const DefaultRegion = RegionSeoul

type regionBox struct {
	region Region
	box    BoundingBox
}

// regionBoxes is evaluated in order; the first matching box wins. The boxes
// overlap: incheon sits inside the wider gyeonggi box and must be checked
// before it, seoul before gyeonggi for the same reason.
var regionBoxes = []regionBox{
	{RegionSeoul, BoundingBox{MinLat: 37.4, MaxLat: 37.7, MinLon: 126.8, MaxLon: 127.2}},
	{RegionIncheon, BoundingBox{MinLat: 37.4, MaxLat: 37.6, MinLon: 126.5, MaxLon: 126.8}},
	{RegionGyeonggi, BoundingBox{MinLat: 37.0, MaxLat: 38.0, MinLon: 126.5, MaxLon: 127.5}},
	{RegionBusan, BoundingBox{MinLat: 35.0, MaxLat: 35.3, MinLon: 129.0, MaxLon: 129.3}},
	{RegionDaegu, BoundingBox{MinLat: 35.7, MaxLat: 36.0, MinLon: 128.4, MaxLon: 128.7}},
	{RegionGwangju, BoundingBox{MinLat: 35.1, MaxLat: 35.2, MinLon: 126.8, MaxLon: 126.9}},
	{RegionDaejeon, BoundingBox{MinLat: 36.3, MaxLat: 36.4, MinLon: 127.3, MaxLon: 127.5}},
}

// DetectRegion maps a coordinate to a region. It is total: missing or
// out-of-range coordinates yield the default region, never an error.
func DetectRegion(latitude, longitude *float64) Region {
	if latitude == nil || longitude == nil {
		return DefaultRegion
	}

	for _, rb := range regionBoxes {
		if rb.box.Contains(*latitude, *longitude) {
			return rb.region
		}
	}

	return DefaultRegion
}

// MatchesAnyRegionBox reports whether a coordinate falls inside one of the
// known region boxes, as opposed to being defaulted.
func MatchesAnyRegionBox(latitude, longitude float64) bool {
	for _, rb := range regionBoxes {
		if rb.box.Contains(latitude, longitude) {
			return true
		}
	}
	return false
}

// cityCodes maps a region to the city code string the national transit
// aggregator expects.
var cityCodes = map[Region]string{
	RegionSeoul:     "11",
	RegionBusan:     "26",
	RegionDaegu:     "27",
	RegionIncheon:   "28",
	RegionGwangju:   "29",
	RegionDaejeon:   "30",
	RegionUlsan:     "31",
	RegionGyeonggi:  "41",
	RegionGangwon:   "42",
	RegionChungbuk:  "43",
	RegionChungnam:  "44",
	RegionJeonbuk:   "45",
	RegionJeonnam:   "46",
	RegionGyeongbuk: "47",
	RegionGyeongnam: "48",
	RegionJeju:      "50",
}

// CityCode returns the national aggregator city code for a region, defaulting
// to Seoul's for unknown regions.
func (r Region) CityCode() string {
	if code, ok := cityCodes[r]; ok {
		return code
	}
	return "11"
}

var regionNames = map[Region]string{
	RegionSeoul:    "서울특별시",
	RegionGyeonggi: "경기도",
	RegionBusan:    "부산광역시",
	RegionIncheon:  "인천광역시",
	RegionDaegu:    "대구광역시",
	RegionGwangju:  "광주광역시",
	RegionDaejeon:  "대전광역시",
}

// DisplayName returns the Korean name of the region for user-facing messages.
func (r Region) DisplayName() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return regionNames[RegionSeoul]
}

// HasRegionalBIS reports whether a region-specific bus information system
// feed exists for this region. Only Seoul and Gyeonggi ever had one; every
// other region goes straight to the national aggregator.
func (r Region) HasRegionalBIS() bool {
	return r == RegionSeoul || r == RegionGyeonggi
}

// CityCodeList is one entry of the national aggregator's city code catalogue.
type CityCodeList struct {
	CityCode string `json:"citycode"`
	CityName string `json:"cityname"`
}
