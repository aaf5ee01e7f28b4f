package store

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"kuripot/internal/core"
	"kuripot/internal/kv"
)

// TimeLogStore owns the work time-in/time-out records. Per calendar date a
// log moves NoEntry -> InProgress (time in set) -> Complete (both set).
// RecordTimeIn and RecordTimeOut look up the date's existing record and
// update it in place, so under normal flow there is at most one log per
// date; Add bypasses the lookup and can create duplicates.
type TimeLogStore struct {
	mu    sync.Mutex
	kv    kv.Store
	items []core.TimeLogRecord
}

// TimeLogPatch carries the fields an update may change. An empty string
// pointer clears the field. Duration is always recomputed. Reason, when
// given, is kept on the edit history entries the update produces.
type TimeLogPatch struct {
	TimeIn  *string
	TimeOut *string
	Reason  string
}

func NewTimeLogStore(ctx context.Context, s kv.Store) (*TimeLogStore, error) {
	items, err := loadSlice[core.TimeLogRecord](ctx, s, kv.KeyTimeLogs)
	if err != nil {
		return nil, err
	}
	return &TimeLogStore{kv: s, items: items}, nil
}

// RecordTimeIn stamps the time-in for a date. If a log already exists for
// that date the prior time-in is overwritten and the duration recomputed;
// otherwise a new in-progress log is created.
func (s *TimeLogStore) RecordTimeIn(ctx context.Context, date core.Date, timeIn string) (core.TimeLogRecord, error) {
	if err := validateClock(timeIn); err != nil {
		return core.TimeLogRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfDate(date)
	if i < 0 {
		rec := core.TimeLogRecord{ID: newID(), Date: date, TimeIn: timeIn}
		return s.appendLocked(ctx, rec)
	}

	prev := s.items[i]
	updated := prev
	updated.TimeIn = timeIn
	updated.Duration = durationBetween(updated.TimeIn, updated.TimeOut)
	s.items[i] = updated
	if err := saveSlice(ctx, s.kv, kv.KeyTimeLogs, s.items); err != nil {
		s.items[i] = prev
		return core.TimeLogRecord{}, err
	}

	slog.InfoContext(ctx, "Time in recorded", "date", date.String(), "time_in", timeIn)
	return updated, nil
}

// RecordTimeOut stamps the time-out for a date. With a matching time-in the
// log becomes complete and the duration is computed; without one a log with
// an empty time-in is created and the duration left unset. That permissive
// case is deliberate.
func (s *TimeLogStore) RecordTimeOut(ctx context.Context, date core.Date, timeOut string) (core.TimeLogRecord, error) {
	if err := validateClock(timeOut); err != nil {
		return core.TimeLogRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfDate(date)
	if i < 0 || s.items[i].TimeIn == "" {
		rec := core.TimeLogRecord{ID: newID(), Date: date, TimeOut: timeOut}
		return s.appendLocked(ctx, rec)
	}

	prev := s.items[i]
	updated := prev
	updated.TimeOut = timeOut
	updated.Duration = durationBetween(updated.TimeIn, updated.TimeOut)
	s.items[i] = updated
	if err := saveSlice(ctx, s.kv, kv.KeyTimeLogs, s.items); err != nil {
		s.items[i] = prev
		return core.TimeLogRecord{}, err
	}

	slog.InfoContext(ctx, "Time out recorded", "date", date.String(), "time_out", timeOut)
	return updated, nil
}

// Add appends a record without the per-date lookup.
func (s *TimeLogStore) Add(ctx context.Context, rec core.TimeLogRecord) (core.TimeLogRecord, error) {
	if err := rec.Date.Validate(); err != nil {
		return core.TimeLogRecord{}, err
	}
	for _, clock := range []string{rec.TimeIn, rec.TimeOut} {
		if clock != "" {
			if err := validateClock(clock); err != nil {
				return core.TimeLogRecord{}, err
			}
		}
	}
	rec.ID = newID()
	rec.Duration = durationBetween(rec.TimeIn, rec.TimeOut)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(ctx, rec)
}

func (s *TimeLogStore) Update(ctx context.Context, id string, patch TimeLogPatch) (core.TimeLogRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.TimeLogRecord{}, fmt.Errorf("time log %s: %w", id, core.ErrNotFound)
	}

	updated := s.items[i]
	now := time.Now()
	if patch.TimeIn != nil {
		if *patch.TimeIn != "" {
			if err := validateClock(*patch.TimeIn); err != nil {
				return core.TimeLogRecord{}, err
			}
		}
		if *patch.TimeIn != updated.TimeIn {
			updated.EditHistory = appendEdit(updated.EditHistory, core.TimeLogEdit{
				Timestamp: now,
				Field:     "timeIn",
				OldValue:  updated.TimeIn,
				NewValue:  *patch.TimeIn,
				Reason:    patch.Reason,
			})
		}
		updated.TimeIn = *patch.TimeIn
	}
	if patch.TimeOut != nil {
		if *patch.TimeOut != "" {
			if err := validateClock(*patch.TimeOut); err != nil {
				return core.TimeLogRecord{}, err
			}
		}
		if *patch.TimeOut != updated.TimeOut {
			updated.EditHistory = appendEdit(updated.EditHistory, core.TimeLogEdit{
				Timestamp: now,
				Field:     "timeOut",
				OldValue:  updated.TimeOut,
				NewValue:  *patch.TimeOut,
				Reason:    patch.Reason,
			})
		}
		updated.TimeOut = *patch.TimeOut
	}
	updated.Duration = durationBetween(updated.TimeIn, updated.TimeOut)

	prev := s.items[i]
	s.items[i] = updated
	if err := saveSlice(ctx, s.kv, kv.KeyTimeLogs, s.items); err != nil {
		s.items[i] = prev
		return core.TimeLogRecord{}, err
	}
	return updated, nil
}

func (s *TimeLogStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("time log %s: %w", id, core.ErrNotFound)
	}

	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	if err := saveSlice(ctx, s.kv, kv.KeyTimeLogs, s.items); err != nil {
		s.items = append(s.items[:i], append([]core.TimeLogRecord{removed}, s.items[i:]...)...)
		return err
	}
	return nil
}

func (s *TimeLogStore) All() []core.TimeLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.TimeLogRecord(nil), s.items...)
}

func (s *TimeLogStore) FilterByDateRange(start, end core.Date) []core.TimeLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.TimeLogRecord
	for _, rec := range s.items {
		if rec.Date.Within(start, end) {
			out = append(out, rec)
		}
	}
	return out
}

// FindByDate returns the first log for a date, if any.
func (s *TimeLogStore) FindByDate(date core.Date) (core.TimeLogRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOfDate(date)
	if i < 0 {
		return core.TimeLogRecord{}, false
	}
	return s.items[i], true
}

func (s *TimeLogStore) appendLocked(ctx context.Context, rec core.TimeLogRecord) (core.TimeLogRecord, error) {
	s.items = append(s.items, rec)
	if err := saveSlice(ctx, s.kv, kv.KeyTimeLogs, s.items); err != nil {
		s.items = s.items[:len(s.items)-1]
		return core.TimeLogRecord{}, err
	}
	return rec, nil
}

func (s *TimeLogStore) indexOf(id string) int {
	for i, rec := range s.items {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func (s *TimeLogStore) indexOfDate(date core.Date) int {
	for i, rec := range s.items {
		if rec.Date.Equal(date.Time) {
			return i
		}
	}
	return -1
}

// appendEdit copies before appending so a rolled-back record never shares
// its history backing array with the updated one.
func appendEdit(history []core.TimeLogEdit, edit core.TimeLogEdit) []core.TimeLogEdit {
	out := make([]core.TimeLogEdit, len(history), len(history)+1)
	copy(out, history)
	return append(out, edit)
}

// durationBetween formats the span between two HH:MM clocks as "Hh Mm".
// Spans that cross midnight wrap by adding 24 hours. Either clock missing
// yields an empty duration.
func durationBetween(timeIn, timeOut string) string {
	if timeIn == "" || timeOut == "" {
		return ""
	}
	in, errIn := clockMinutes(timeIn)
	out, errOut := clockMinutes(timeOut)
	if errIn != nil || errOut != nil {
		return ""
	}
	total := out - in
	if total < 0 {
		total += 24 * 60
	}
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

// TotalWorked sums completed log durations over a set of records and
// formats the total as "Hh Mm".
func TotalWorked(logs []core.TimeLogRecord) string {
	total := 0
	for _, rec := range logs {
		if rec.TimeIn == "" || rec.TimeOut == "" {
			continue
		}
		in, errIn := clockMinutes(rec.TimeIn)
		out, errOut := clockMinutes(rec.TimeOut)
		if errIn != nil || errOut != nil {
			continue
		}
		minutes := out - in
		if minutes < 0 {
			minutes += 24 * 60
		}
		total += minutes
	}
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

func validateClock(clock string) error {
	if _, err := clockMinutes(clock); err != nil {
		return err
	}
	return nil
}

func clockMinutes(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return 0, core.ErrInvalidTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, core.ErrInvalidTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, core.ErrInvalidTime
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, core.ErrInvalidTime
	}
	return h*60 + m, nil
}
