package store

import (
	"sync"
	"testing"
	"time"

	"github.com/i474232898/astrodash/internal/forecast"
)

func TestMemoryStore_ReplaceAndRecords(t *testing.T) {
	s := NewMemoryStore()
	fixed := time.Date(2025, 4, 6, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	if got := s.Records(); len(got) != 0 {
		t.Fatalf("new store has %d records, want 0", len(got))
	}
	if !s.UpdatedAt().IsZero() {
		t.Error("new store should have zero UpdatedAt")
	}

	in := []forecast.DisplayRecord{{Date: "2025-04-06"}, {Date: "2025-04-07"}}
	s.Replace(in)
	in[0].Date = "mutated"

	got := s.Records()
	if len(got) != 2 || got[0].Date != "2025-04-06" {
		t.Errorf("Records() = %+v, want the stored copy", got)
	}
	got[1].Date = "mutated"
	if s.Records()[1].Date != "2025-04-07" {
		t.Error("Records() must return a copy")
	}
	if !s.UpdatedAt().Equal(fixed) {
		t.Errorf("UpdatedAt() = %v, want %v", s.UpdatedAt(), fixed)
	}

	s.Replace(nil)
	if got := s.Records(); len(got) != 0 {
		t.Errorf("Records() after Replace(nil) = %+v, want empty", got)
	}
}

func TestMemoryStore_ReadersSeeWholeSequences(t *testing.T) {
	s := NewMemoryStore()
	short := []forecast.DisplayRecord{{Date: "a"}}
	long := []forecast.DisplayRecord{{Date: "a"}, {Date: "b"}, {Date: "c"}}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if i%2 == 0 {
				s.Replace(short)
			} else {
				s.Replace(long)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if n := len(s.Records()); n != 0 && n != 1 && n != 3 {
				t.Errorf("observed partial sequence of length %d", n)
				return
			}
		}
	}()
	wg.Wait()
}
