package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kuripot/internal/core"
)

// errBadRequest marks parse failures that are the caller's fault.
var errBadRequest = errors.New("bad request")

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed body: %v", errBadRequest, err)
	}
	return nil
}

// parseAmount accepts a decimal string ("320.00" or "320,00").
func parseAmount(s string) (core.Money, error) {
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: cents}, nil
}

// parseDateRange reads optional from/to query parameters. Absent bounds
// widen to cover everything.
func parseDateRange(query url.Values) (core.Date, core.Date, error) {
	start := core.NewDate(1, 1, 1)
	end := core.NewDate(9999, 12, 31)

	if v := strings.TrimSpace(query.Get("from")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Date{}, core.Date{}, err
		}
		start = d
	}
	if v := strings.TrimSpace(query.Get("to")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Date{}, core.Date{}, err
		}
		end = d
	}
	return start, end, nil
}

// parseReference reads the optional ref query parameter used as the
// aggregation reference instant; it defaults to now.
func parseReference(query url.Values) (time.Time, error) {
	v := strings.TrimSpace(query.Get("ref"))
	if v == "" {
		return time.Now(), nil
	}
	d, err := core.ParseDate(v)
	if err != nil {
		return time.Time{}, err
	}
	return d.Time, nil
}

func parseIntParam(query url.Values, key string, fallback int) (int, error) {
	v := strings.TrimSpace(query.Get(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s: %q", errBadRequest, key, v)
	}
	return n, nil
}
