package http

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jeamar123/budget-api/internal/core"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-03-05", want: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{in: "2024-03-05 13:45:00", want: time.Date(2024, time.March, 5, 13, 45, 0, 0, time.UTC)},
		{in: "2024-03-05T13:45:00Z", want: time.Date(2024, time.March, 5, 13, 45, 0, 0, time.UTC)},
		{in: "05/03/2024", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseDate(tc.in)
		if tc.wantErr {
			var ve *core.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("parseDate(%q) err = %v, want validation error", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDate(%q) = %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("parseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseRangeQuery(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/income", nil)
		rng, err := parseRangeQuery(r)
		if err != nil || rng != nil {
			t.Fatalf("got %v, %v; want nil range", rng, err)
		}
	})

	t.Run("half range", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/income?start=2024-03-01", nil)
		_, err := parseRangeQuery(r)
		var ve *core.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("err = %v, want validation error", err)
		}
	})

	t.Run("end widened to end of day", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/income?start=2024-03-01&end=2024-03-31", nil)
		rng, err := parseRangeQuery(r)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		want := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)
		if !rng.End.Equal(want) {
			t.Errorf("end = %v, want %v", rng.End, want)
		}
	})
}

func TestRequireRangeQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/expenses-summary", nil)
	_, err := requireRangeQuery(r)
	if err == nil || err.Error() != "Start and End date is required." {
		t.Fatalf("err = %v", err)
	}
}

func TestPathID(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/income/7", nil)
	r.SetPathValue("id", "7")
	id, err := pathID(r)
	if err != nil || id != 7 {
		t.Fatalf("pathID = %d, %v", id, err)
	}

	r.SetPathValue("id", "abc")
	if _, err := pathID(r); err == nil {
		t.Errorf("expected error for non-numeric id")
	}

	r.SetPathValue("id", "-1")
	if _, err := pathID(r); err == nil {
		t.Errorf("expected error for negative id")
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/expenses?limitTo=5&bad=x", nil)
	if got := queryInt(r, "limitTo"); got != 5 {
		t.Errorf("limitTo = %d, want 5", got)
	}
	if got := queryInt(r, "bad"); got != 0 {
		t.Errorf("malformed = %d, want 0", got)
	}
	if got := queryInt(r, "missing"); got != 0 {
		t.Errorf("missing = %d, want 0", got)
	}
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/user", nil)
	if _, ok := bearerToken(r); ok {
		t.Errorf("expected no token without header")
	}

	r.Header.Set("Authorization", "Bearer abc123")
	token, ok := bearerToken(r)
	if !ok || token != "abc123" {
		t.Errorf("token = %q, %v", token, ok)
	}

	r.Header.Set("Authorization", "Basic abc123")
	if _, ok := bearerToken(r); ok {
		t.Errorf("expected no token for non-bearer scheme")
	}
}

func TestNotFoundMessage(t *testing.T) {
	cases := map[string]string{
		"income":   "Income not found",
		"expenses": "Expenses not found",
		"category": "Category not found",
		"budget":   "Budget not found",
		"user":     "User not found",
		"":         "Not found",
	}
	for in, want := range cases {
		if got := notFoundMessage(in); got != want {
			t.Errorf("notFoundMessage(%q) = %q, want %q", in, got, want)
		}
	}
}
