package mcgen

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestNewStoreIsReopenable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RecordGeneration(time.Now(), "dirt", OutputInline); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = NewStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	totals, err := s.Totals()
	if err != nil {
		t.Fatal(err)
	}
	if totals.Total != 1 {
		t.Errorf("Total = %d after reopen, want 1", totals.Total)
	}
}

func TestTotalsEmpty(t *testing.T) {
	s := setupTestStore(t)
	totals, err := s.Totals()
	if err != nil {
		t.Fatalf("Totals failed: %v", err)
	}
	if totals.Total != 0 || totals.Downloads != 0 {
		t.Errorf("Totals = %+v, want zero", totals)
	}
	stats, err := s.BackgroundStats()
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 0 {
		t.Errorf("BackgroundStats = %v, want empty", stats)
	}
}

func TestRecordGeneration(t *testing.T) {
	s := setupTestStore(t)
	now := time.Now()

	records := []struct {
		background string
		output     OutputType
	}{
		{"dirt", OutputInline},
		{"dirt", OutputInline},
		{"dirt", OutputDownload},
		{"stone", OutputInline},
		{"tnt", OutputDownload},
		{"tnt", OutputInline},
		{"tnt", OutputInline},
	}
	for _, r := range records {
		if err := s.RecordGeneration(now, r.background, r.output); err != nil {
			t.Fatalf("RecordGeneration failed: %v", err)
		}
	}

	totals, err := s.Totals()
	if err != nil {
		t.Fatal(err)
	}
	if totals.Total != 7 {
		t.Errorf("Total = %d, want 7", totals.Total)
	}
	if totals.Downloads != 2 {
		t.Errorf("Downloads = %d, want 2", totals.Downloads)
	}

	stats, err := s.BackgroundStats()
	if err != nil {
		t.Fatal(err)
	}
	want := []BackgroundStat{{"dirt", 3}, {"tnt", 3}, {"stone", 1}}
	if len(stats) != len(want) {
		t.Fatalf("BackgroundStats = %v, want %v", stats, want)
	}
	for i := range want {
		if stats[i] != want[i] {
			t.Errorf("BackgroundStats[%d] = %v, want %v", i, stats[i], want[i])
		}
	}
}

func TestDailyStats(t *testing.T) {
	s := setupTestStore(t)
	now := time.Now().UTC()

	for i, n := range []int{3, 1, 2} {
		day := now.AddDate(0, 0, -i)
		for j := 0; j < n; j++ {
			if err := s.RecordGeneration(day, "dirt", OutputInline); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := s.RecordGeneration(now.AddDate(0, 0, -40), "dirt", OutputInline); err != nil {
		t.Fatal(err)
	}

	days, err := s.DailyStats(30)
	if err != nil {
		t.Fatalf("DailyStats failed: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("DailyStats = %v, want 3 days", days)
	}
	if days[0].Day != now.Format(dayLayout) || days[0].Count != 3 {
		t.Errorf("newest day = %+v", days[0])
	}
	if days[2].Count != 2 {
		t.Errorf("oldest day = %+v", days[2])
	}
}
