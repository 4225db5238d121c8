package bench_test

import (
	"math"
	"testing"
	"time"

	"github.com/Sumatoshi-tech/compbench/internal/bench"
)

func okResult(methodName string, in, out int64, elapsed time.Duration) bench.Result {
	return bench.Result{
		Method:   methodName,
		OK:       true,
		InBytes:  in,
		OutBytes: out,
		Elapsed:  elapsed,
	}
}

func TestBlockRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int64
		want int64
	}{
		{0, 0},
		{1, 4096},
		{4095, 4096},
		{4096, 4096},
		{4097, 8192},
		{12288, 12288},
	}

	for _, tc := range tests {
		got := bench.BlockRound(tc.n, bench.DefaultBlockSize)
		if got != tc.want {
			t.Fatalf("BlockRound(%d) = %d, expected %d", tc.n, got, tc.want)
		}
	}
}

func TestSummary_FoldOrderIndependence(t *testing.T) {
	t.Parallel()

	results := []bench.Result{
		okResult("m", 100, 50, time.Millisecond),
		okResult("m", 900, 450, time.Millisecond),
		okResult("m", 5000, 100, 2*time.Millisecond),
		okResult("m", 4097, 4000, 3*time.Millisecond),
	}

	orders := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{2, 0, 3, 1},
	}

	var baseline bench.Summary

	for i, order := range orders {
		var s bench.Summary
		for _, idx := range order {
			s.Fold(results[idx], bench.DefaultBlockSize)
		}

		if i == 0 {
			baseline = s

			continue
		}

		if s != baseline {
			t.Fatalf("fold order %v changed summary: %+v vs %+v", order, s, baseline)
		}
	}
}

func TestSummary_CombineMatchesSequentialFold(t *testing.T) {
	t.Parallel()

	results := []bench.Result{
		okResult("m", 100, 50, time.Millisecond),
		okResult("m", 900, 450, time.Millisecond),
		okResult("m", 5000, 100, 2*time.Millisecond),
		okResult("m", 4097, 4000, 3*time.Millisecond),
	}

	var sequential bench.Summary
	for _, res := range results {
		sequential.Fold(res, bench.DefaultBlockSize)
	}

	var left, right bench.Summary
	left.Fold(results[0], bench.DefaultBlockSize)
	left.Fold(results[1], bench.DefaultBlockSize)
	right.Fold(results[2], bench.DefaultBlockSize)
	right.Fold(results[3], bench.DefaultBlockSize)

	combinedLR := left
	combinedLR.Combine(right)

	combinedRL := right
	combinedRL.Combine(left)

	if combinedLR != sequential {
		t.Fatalf("combine(left, right) diverged: %+v vs %+v", combinedLR, sequential)
	}

	if combinedRL != sequential {
		t.Fatalf("combine(right, left) diverged: %+v vs %+v", combinedRL, sequential)
	}
}

func TestSummary_CombineWithEmpty(t *testing.T) {
	t.Parallel()

	var folded bench.Summary
	folded.Fold(okResult("m", 100, 50, time.Millisecond), bench.DefaultBlockSize)

	empty := bench.Summary{}

	combined := folded
	combined.Combine(empty)

	if combined != folded {
		t.Fatalf("combining with empty changed summary: %+v", combined)
	}

	combined = bench.Summary{}
	combined.Combine(folded)

	if combined != folded {
		t.Fatalf("combining into empty lost data: %+v", combined)
	}
}

func TestSummary_FinalizeEndToEnd(t *testing.T) {
	t.Parallel()

	var s bench.Summary
	s.Fold(okResult("gzip-1", 100, 50, time.Millisecond), bench.DefaultBlockSize)
	s.Fold(okResult("gzip-1", 900, 450, time.Millisecond), bench.DefaultBlockSize)

	row := s.Finalize("gzip-1")

	if row.Count != 2 || row.InBytes != 1000 || row.OutBytes != 500 {
		t.Fatalf("unexpected sums: %+v", row)
	}

	if !row.Defined {
		t.Fatal("expected defined row")
	}

	if math.Abs(row.RatioPct-50) > 1e-9 {
		t.Fatalf("expected ratio 50%%, got %f", row.RatioPct)
	}

	if math.Abs(row.MinRatioPct-50) > 1e-9 || math.Abs(row.MaxRatioPct-50) > 1e-9 {
		t.Fatalf("expected 50-50%% range, got %f-%f", row.MinRatioPct, row.MaxRatioPct)
	}

	// 1000 bytes over 2ms.
	if math.Abs(row.BytesPerSecond-500000) > 1e-6 {
		t.Fatalf("expected 500000 B/s, got %f", row.BytesPerSecond)
	}

	// Both files round up to one 4k block each way.
	if row.InBlockBytes != 8192 || row.OutBlockBytes != 8192 {
		t.Fatalf("unexpected block sums: %+v", row)
	}

	if math.Abs(row.BlockRatioPct-100) > 1e-9 {
		t.Fatalf("expected block ratio 100%%, got %f", row.BlockRatioPct)
	}
}

func TestSummary_RatioExtremesTracked(t *testing.T) {
	t.Parallel()

	var s bench.Summary
	s.Fold(okResult("m", 1000, 100, time.Millisecond), bench.DefaultBlockSize)
	s.Fold(okResult("m", 1000, 900, time.Millisecond), bench.DefaultBlockSize)

	row := s.Finalize("m")

	if math.Abs(row.MinRatioPct-10) > 1e-9 {
		t.Fatalf("expected min ratio 10%%, got %f", row.MinRatioPct)
	}

	if math.Abs(row.MaxRatioPct-90) > 1e-9 {
		t.Fatalf("expected max ratio 90%%, got %f", row.MaxRatioPct)
	}
}

func TestAggregator_ZeroCountRowForFailedMethod(t *testing.T) {
	t.Parallel()

	agg := bench.NewAggregator(bench.DefaultBlockSize, []string{"gzip-1", "dact"})

	agg.Fold(okResult("gzip-1", 100, 50, time.Millisecond))
	agg.Fold(bench.Result{Method: "dact", Reason: bench.FailToolMissing, InBytes: 100})

	rows := agg.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[1].Method != "dact" || rows[1].Count != 0 || rows[1].Defined {
		t.Fatalf("expected undefined zero-count dact row, got %+v", rows[1])
	}
}

func TestAggregator_FailedResultsNeverFolded(t *testing.T) {
	t.Parallel()

	agg := bench.NewAggregator(bench.DefaultBlockSize, []string{"gzip-1"})

	agg.Fold(okResult("gzip-1", 100, 50, time.Millisecond))
	agg.Fold(bench.Result{Method: "gzip-1", Reason: bench.FailNonZeroExit, InBytes: 900})

	rows := agg.Rows()
	if rows[0].Count != 1 || rows[0].InBytes != 100 {
		t.Fatalf("failed result leaked into aggregate: %+v", rows[0])
	}
}

func TestAggregator_UnseededMethodAppended(t *testing.T) {
	t.Parallel()

	agg := bench.NewAggregator(bench.DefaultBlockSize, []string{"gzip-1"})
	agg.Fold(okResult("zstd-1", 100, 10, time.Millisecond))

	rows := agg.Rows()
	if len(rows) != 2 || rows[1].Method != "zstd-1" || rows[1].Count != 1 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
