package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/jeamar123/budget-api/internal/core"
	"github.com/jeamar123/budget-api/internal/storage"
)

// decodeJSON parses the request body into dst, rejecting unknown syntax with
// a validation error.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return core.Validationf("invalid request body: %v", err)
	}
	return nil
}

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

// parseDate accepts the date formats clients actually send.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, core.Validationf("invalid date %q", s)
}

// requireDateField parses a mandatory date input.
func requireDateField(value, name string) (time.Time, error) {
	if value == "" {
		return time.Time{}, core.Validationf("%s is required", name)
	}
	return parseDate(value)
}

// parseRangeQuery reads the start/end query pair. Both must be present
// together; the end date is widened to the end of its day.
func parseRangeQuery(r *http.Request) (*storage.DateRange, error) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, core.Validationf("Start and End date is required.")
	}
	s, err := parseDate(start)
	if err != nil {
		return nil, err
	}
	e, err := parseDate(end)
	if err != nil {
		return nil, err
	}
	return &storage.DateRange{Start: s, End: core.EndOfDay(e)}, nil
}

// requireRangeQuery is parseRangeQuery for endpoints where the range is
// mandatory.
func requireRangeQuery(r *http.Request) (storage.DateRange, error) {
	rng, err := parseRangeQuery(r)
	if err != nil {
		return storage.DateRange{}, err
	}
	if rng == nil {
		return storage.DateRange{}, core.Validationf("Start and End date is required.")
	}
	return *rng, nil
}

// pathID reads the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, core.Validationf("invalid id %q", raw)
	}
	return id, nil
}

// queryInt reads an optional integer query parameter, zero when absent or
// malformed.
func queryInt(r *http.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
