package http

import (
	"testing"
	"time"
)

func TestRateLimiterAllows(t *testing.T) {
	rl := newRateLimiter(3)
	defer rl.stop()

	for i := 0; i < 3; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d unexpectedly blocked", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Errorf("request over the limit was allowed")
	}
	if !rl.allow("5.6.7.8") {
		t.Errorf("separate client was blocked")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := newRateLimiter(1)
	defer rl.stop()

	if !rl.allow("1.2.3.4") {
		t.Fatalf("first request blocked")
	}
	if rl.allow("1.2.3.4") {
		t.Fatalf("second request in window allowed")
	}

	rl.mu.Lock()
	rl.clients["1.2.3.4"].lastRequest = time.Now().Add(-2 * time.Minute)
	rl.mu.Unlock()

	if !rl.allow("1.2.3.4") {
		t.Errorf("request after window expiry blocked")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := newRateLimiter(10)
	defer rl.stop()

	rl.allow("1.2.3.4")
	rl.mu.Lock()
	rl.clients["1.2.3.4"].lastRequest = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rl.cleanupStaleEntries()

	rl.mu.Lock()
	_, exists := rl.clients["1.2.3.4"]
	rl.mu.Unlock()
	if exists {
		t.Errorf("stale client entry survived cleanup")
	}
}
