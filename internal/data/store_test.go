package data

import (
	"errors"
	"sync"
	"testing"
	"time"

	"tvm-engine/internal/finance"
)

func newSeries(t *testing.T) *finance.CashFlowSeries {
	t.Helper()
	s, err := finance.NewCashFlowSeries([]float64{-1000, 300, 300, 300}, 0.08)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSessionStoreLifecycle(t *testing.T) {
	t.Parallel()

	c := NewSessionStore(time.Hour, 0)
	defer c.Close()

	s := c.Create("plant", newSeries(t))
	if s.ID == "" || c.Len() != 1 {
		t.Fatalf("Create: id %q, len %d", s.ID, c.Len())
	}

	got, err := c.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get: %v", err)
	}

	if err := c.Delete(s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Get after delete: %v", err)
	}
	if err := c.Delete(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewSessionStore(time.Minute, 0)
	defer c.Close()
	c.now = func() time.Time { return now }

	keep := c.Create("keep", newSeries(t))
	drop := c.Create("drop", newSeries(t))

	now = now.Add(50 * time.Second)
	if _, err := c.Get(keep.ID); err != nil {
		t.Fatalf("Get within ttl: %v", err)
	}

	now = now.Add(30 * time.Second)
	if n := c.sweep(); n != 1 {
		t.Fatalf("sweep removed %d, want 1", n)
	}
	if _, err := c.Get(drop.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expired session still present: %v", err)
	}
	if _, err := c.Get(keep.ID); err != nil {
		t.Fatalf("accessed session expired: %v", err)
	}
}

func TestSessionDoSerializesMutation(t *testing.T) {
	t.Parallel()

	c := NewSessionStore(time.Hour, 0)
	defer c.Close()
	s := c.Create("", newSeries(t))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(series *finance.CashFlowSeries) error {
				series.AddCashFlow(10)
				series.NetPresentValue()
				return nil
			})
		}()
	}
	wg.Wait()

	var n int
	_ = s.Do(func(series *finance.CashFlowSeries) error {
		n = series.Len()
		return nil
	})
	if n != 54 {
		t.Fatalf("Len = %d, want 54", n)
	}
}

func TestSessionStoreSweeperStops(t *testing.T) {
	t.Parallel()

	c := NewSessionStore(time.Nanosecond, time.Millisecond)
	c.Create("x", newSeries(t))

	deadline := time.Now().Add(2 * time.Second)
	for c.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if c.Len() != 0 {
		t.Fatal("sweeper did not remove the expired session")
	}
	c.Close()
	c.Close()
}
