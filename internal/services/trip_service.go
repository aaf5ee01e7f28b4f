// Package services orchestrates operations that span more than one store.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"kuripot/internal/core"
	"kuripot/internal/fare"
	"kuripot/internal/store"
)

// TripService saves fare-calculator results. Saving a trip also mirrors it
// into the expense store as a transport expense; the two records are
// independent afterwards, so the write is kept atomic here: both records
// land or neither does.
type TripService struct {
	trips    *store.TripStore
	expenses *store.ExpenseStore
}

func NewTripService(trips *store.TripStore, expenses *store.ExpenseStore) *TripService {
	return &TripService{trips: trips, expenses: expenses}
}

// SaveTrip prices the trip, persists the trip record and the derived
// transport expense, and returns both.
func (s *TripService) SaveTrip(ctx context.Context, date core.Date, origin, destination string, tripCount, discountPercent int) (core.TripRecord, core.ExpenseRecord, error) {
	if err := date.Validate(); err != nil {
		return core.TripRecord{}, core.ExpenseRecord{}, err
	}

	quote, err := fare.Compute(origin, destination, tripCount, discountPercent)
	if err != nil {
		return core.TripRecord{}, core.ExpenseRecord{}, err
	}

	trip, err := s.trips.Add(ctx, core.TripRecord{
		Date:             date,
		OriginStation:    quote.OriginStation,
		DestStation:      quote.DestStation,
		StationsTraveled: quote.StationsTraveled,
		TripCount:        quote.TripCount,
		BaseFare:         quote.BaseFare,
		DiscountPercent:  quote.DiscountPercent,
		DiscountedFare:   quote.DiscountedFare,
		TotalCost:        quote.TotalCost,
		TotalSavings:     quote.TotalSavings,
	})
	if err != nil {
		return core.TripRecord{}, core.ExpenseRecord{}, fmt.Errorf("save trip: %w", err)
	}

	expense, err := s.expenses.Add(ctx, core.ExpenseRecord{
		Category:    core.CategoryTransport,
		Amount:      quote.TotalCost,
		Description: fmt.Sprintf("LRT: %s to %s (%d trips)", quote.OriginStation, quote.DestStation, quote.TripCount),
		Date:        date,
	})
	if err != nil {
		// Roll back the trip so no orphan is left behind.
		if rbErr := s.trips.Remove(ctx, trip.ID); rbErr != nil {
			slog.ErrorContext(ctx, "Failed to roll back trip after expense write failure",
				"trip_id", trip.ID, "error", rbErr)
		}
		return core.TripRecord{}, core.ExpenseRecord{}, fmt.Errorf("mirror trip expense: %w", err)
	}

	return trip, expense, nil
}
