// Package fare computes LRT-1 trip fares over the fixed station line.
package fare

import (
	"kuripot/internal/core"
)

// LRT-1 fare schedule, 2025 rates.
// Minimum fare includes the PHP 1.25 RFID card fee on top of the PHP 15.00
// boarding fare; each station adds PHP 1.47.
const (
	MinimumFareCents    = 1625
	PerStationFareCents = 147
)

// Stations is the ordered LRT-1 station list, Baclaran to Roosevelt.
// Index order matches physical line position and drives distance math.
var Stations = []string{
	"Baclaran",
	"EDSA",
	"Libertad",
	"Gil Puyat",
	"Vito Cruz",
	"Quirino",
	"Pedro Gil",
	"United Nations",
	"Central Terminal",
	"Carriedo",
	"Doroteo Jose",
	"Bambang",
	"Tayuman",
	"Blumentritt",
	"Abad Santos",
	"R. Papa",
	"5th Avenue",
	"Monumento",
	"Balintawak",
	"Roosevelt",
}

// The 5th Avenue / Gil Puyat pair is charged a flat promotional fare in
// either direction instead of the distance formula. Keep this as a lookup
// exception; it must not be derived.
const (
	overrideStationA  = "5th Avenue"
	overrideStationB  = "Gil Puyat"
	OverrideFareCents = 3000
)

// Quote is the result of a fare computation. All totals scale linearly with
// the trip count and satisfy:
//
//	TotalCost    = DiscountedFare * TripCount
//	TotalSavings = (BaseFare - DiscountedFare) * TripCount
type Quote struct {
	OriginStation    string
	DestStation      string
	StationsTraveled int
	TripCount        int
	BaseFare         core.Money
	DiscountPercent  int
	DiscountedFare   core.Money
	TotalCost        core.Money
	TotalSavings     core.Money
}

// StationIndex returns the line position of a station name. Unknown names
// resolve to 0 (Baclaran); that is deliberate policy, not an error.
func StationIndex(name string) int {
	for i, s := range Stations {
		if s == name {
			return i
		}
	}
	return 0
}

// Compute prices a trip between two stations. It is a pure function with no
// side effects. Discount percent outside [0,100] is rejected, a trip count
// below 1 is rejected; everything else has a defined answer.
func Compute(origin, destination string, tripCount, discountPercent int) (Quote, error) {
	if tripCount < 1 {
		return Quote{}, core.ErrInvalidTripCount
	}
	if discountPercent < 0 || discountPercent > 100 {
		return Quote{}, core.ErrInvalidDiscount
	}

	from := StationIndex(origin)
	to := StationIndex(destination)
	stations := to - from
	if stations < 0 {
		stations = -stations
	}

	base := core.Money{Cents: MinimumFareCents + int64(stations)*PerStationFareCents}
	if isOverridePair(origin, destination) {
		base = core.Money{Cents: OverrideFareCents}
	}

	discounted := base.Sub(base.PercentOf(discountPercent))

	return Quote{
		OriginStation:    origin,
		DestStation:      destination,
		StationsTraveled: stations,
		TripCount:        tripCount,
		BaseFare:         base,
		DiscountPercent:  discountPercent,
		DiscountedFare:   discounted,
		TotalCost:        discounted.MulInt(tripCount),
		TotalSavings:     base.Sub(discounted).MulInt(tripCount),
	}, nil
}

func isOverridePair(a, b string) bool {
	return (a == overrideStationA && b == overrideStationB) ||
		(a == overrideStationB && b == overrideStationA)
}

// Table returns one quote per distance bracket for display in the fare
// reference table: fares from Baclaran to each station at the given discount.
func Table(discountPercent int) ([]Quote, error) {
	out := make([]Quote, 0, len(Stations)-1)
	for _, dest := range Stations[1:] {
		q, err := Compute(Stations[0], dest, 1, discountPercent)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}
