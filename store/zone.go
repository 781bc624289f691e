package store

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultZoneDecimals is the grid precision of ZoneFromCoordinates: cells of
// 0.1 degree, roughly a neighbourhood.
const DefaultZoneDecimals = 1

// ZoneResolver maps device coordinates to a zone label.
type ZoneResolver interface {
	Resolve(latitude, longitude float64) (string, error)
}

// GridResolver labels zones by flooring each coordinate to Decimals decimal
// places. It stands in for a geocoding lookup of the neighbourhood. With
// Decimals 0 the label is Zone_<floor(lat)>_<floor(lng)>.
type GridResolver struct {
	Decimals int
}

// Resolve implements ZoneResolver.
func (g GridResolver) Resolve(latitude, longitude float64) (string, error) {
	for _, v := range []float64{latitude, longitude} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", invalid("coordinate %v is not a finite number", v)
		}
	}
	if latitude < -90 || latitude > 90 {
		return "", invalid("latitude %v out of range", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return "", invalid("longitude %v out of range", longitude)
	}
	if g.Decimals < 0 || g.Decimals > 6 {
		return "", invalid("grid precision %d out of range", g.Decimals)
	}
	return g.label(latitude, longitude), nil
}

func (g GridResolver) label(latitude, longitude float64) string {
	var b strings.Builder
	b.WriteString("Zone_")
	b.WriteString(floorTo(latitude, g.Decimals))
	b.WriteByte('_')
	b.WriteString(floorTo(longitude, g.Decimals))
	return b.String()
}

// ZoneFromCoordinates returns the zone label of the default grid. Equal
// inputs give equal labels; coordinates in different grid cells, and so with
// different integer floors, give different labels.
func ZoneFromCoordinates(latitude, longitude float64) string {
	return GridResolver{Decimals: DefaultZoneDecimals}.label(latitude, longitude)
}

// floorTo formats v floored to the given number of decimals. The float is
// read as its shortest decimal form first, so 4.35 floors to 4.35 and not to
// the 4.34 that 4.35*100 gives in binary.
func floorTo(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	places := int32(decimals)
	return decimal.NewFromFloat(v).Shift(places).Floor().Shift(-places).StringFixed(places)
}
