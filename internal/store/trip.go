package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"kuripot/internal/core"
	"kuripot/internal/kv"
)

// TripStore is the owner of all transit trip records.
type TripStore struct {
	mu    sync.Mutex
	kv    kv.Store
	items []core.TripRecord
}

// TripPatch carries the fields an update may change. Changing the trip
// count recomputes the totals from the stored per-trip fares.
type TripPatch struct {
	Date      *core.Date
	TripCount *int
}

func NewTripStore(ctx context.Context, s kv.Store) (*TripStore, error) {
	items, err := loadSlice[core.TripRecord](ctx, s, kv.KeyTransportLogs)
	if err != nil {
		return nil, err
	}
	return &TripStore{kv: s, items: items}, nil
}

func (s *TripStore) Add(ctx context.Context, rec core.TripRecord) (core.TripRecord, error) {
	rec.ID = newID()
	if err := rec.Validate(); err != nil {
		return core.TripRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, rec)
	if err := saveSlice(ctx, s.kv, kv.KeyTransportLogs, s.items); err != nil {
		s.items = s.items[:len(s.items)-1]
		return core.TripRecord{}, err
	}

	slog.InfoContext(ctx, "Trip saved",
		"id", rec.ID,
		"from", rec.OriginStation,
		"to", rec.DestStation,
		"trips", rec.TripCount,
		"total_cost_cents", rec.TotalCost.Cents)
	return rec, nil
}

func (s *TripStore) Update(ctx context.Context, id string, patch TripPatch) (core.TripRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.TripRecord{}, fmt.Errorf("trip %s: %w", id, core.ErrNotFound)
	}

	updated := s.items[i]
	if patch.Date != nil {
		updated.Date = *patch.Date
	}
	if patch.TripCount != nil {
		updated.TripCount = *patch.TripCount
		updated.TotalCost = updated.DiscountedFare.MulInt(updated.TripCount)
		updated.TotalSavings = updated.BaseFare.Sub(updated.DiscountedFare).MulInt(updated.TripCount)
	}
	if err := updated.Validate(); err != nil {
		return core.TripRecord{}, err
	}

	prev := s.items[i]
	s.items[i] = updated
	if err := saveSlice(ctx, s.kv, kv.KeyTransportLogs, s.items); err != nil {
		s.items[i] = prev
		return core.TripRecord{}, err
	}
	return updated, nil
}

func (s *TripStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("trip %s: %w", id, core.ErrNotFound)
	}

	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	if err := saveSlice(ctx, s.kv, kv.KeyTransportLogs, s.items); err != nil {
		s.items = append(s.items[:i], append([]core.TripRecord{removed}, s.items[i:]...)...)
		return err
	}
	return nil
}

func (s *TripStore) All() []core.TripRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.TripRecord(nil), s.items...)
}

func (s *TripStore) FilterByDateRange(start, end core.Date) []core.TripRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.TripRecord
	for _, rec := range s.items {
		if rec.Date.Within(start, end) {
			out = append(out, rec)
		}
	}
	return out
}

// TotalSavings sums the discount savings over every recorded trip.
func (s *TripStore) TotalSavings() core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total core.Money
	for _, rec := range s.items {
		total = total.Add(rec.TotalSavings)
	}
	return total
}

func (s *TripStore) indexOf(id string) int {
	for i, rec := range s.items {
		if rec.ID == id {
			return i
		}
	}
	return -1
}
