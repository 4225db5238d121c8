package bench

import (
	"sync"
	"time"
)

// DefaultBlockSize models the minimum allocation unit of a block-oriented
// store.
const DefaultBlockSize = 4096

const percent = 100

// BlockRound rounds n up to the next multiple of block.
func BlockRound(n, block int64) int64 {
	return (n + block - 1) / block * block
}

// Summary is the running aggregate for one method across all successfully
// processed files. It stores raw sums only; percentages and throughput
// are derived at finalize time so folding stays associative and
// order-independent.
type Summary struct {
	Count int

	InBytes  int64
	OutBytes int64

	InBlockBytes  int64
	OutBlockBytes int64

	Elapsed time.Duration

	MinRatio float64
	MaxRatio float64

	MinBlockRatio float64
	MaxBlockRatio float64
}

// Fold accumulates one successful result. Callers must not fold failed
// results; ratios are per-file extremes and would be corrupted by
// sentinel values.
func (s *Summary) Fold(res Result, block int64) {
	ratio := float64(res.OutBytes) / float64(res.InBytes)
	inBlock := BlockRound(res.InBytes, block)
	outBlock := BlockRound(res.OutBytes, block)
	blockRatio := float64(outBlock) / float64(inBlock)

	if s.Count == 0 {
		s.MinRatio, s.MaxRatio = ratio, ratio
		s.MinBlockRatio, s.MaxBlockRatio = blockRatio, blockRatio
	} else {
		s.MinRatio = min(s.MinRatio, ratio)
		s.MaxRatio = max(s.MaxRatio, ratio)
		s.MinBlockRatio = min(s.MinBlockRatio, blockRatio)
		s.MaxBlockRatio = max(s.MaxBlockRatio, blockRatio)
	}

	s.Count++
	s.InBytes += res.InBytes
	s.OutBytes += res.OutBytes
	s.InBlockBytes += inBlock
	s.OutBlockBytes += outBlock
	s.Elapsed += res.Elapsed
}

// Combine merges another summary into s. Combine is commutative and
// associative, so partial summaries can be reduced at fan-in points in
// any order.
func (s *Summary) Combine(other Summary) {
	if other.Count == 0 {
		return
	}

	if s.Count == 0 {
		*s = other

		return
	}

	s.Count += other.Count
	s.InBytes += other.InBytes
	s.OutBytes += other.OutBytes
	s.InBlockBytes += other.InBlockBytes
	s.OutBlockBytes += other.OutBlockBytes
	s.Elapsed += other.Elapsed
	s.MinRatio = min(s.MinRatio, other.MinRatio)
	s.MaxRatio = max(s.MaxRatio, other.MaxRatio)
	s.MinBlockRatio = min(s.MinBlockRatio, other.MinBlockRatio)
	s.MaxBlockRatio = max(s.MaxBlockRatio, other.MaxBlockRatio)
}

// Row is a finalized report record for one method. Defined is false when
// the method measured no successful files, in which case ratio and
// throughput fields are meaningless and rendered blank.
type Row struct {
	Method string `json:"method" yaml:"method"`
	Count  int    `json:"count" yaml:"count"`

	InBytes  int64 `json:"in_bytes" yaml:"in_bytes"`
	OutBytes int64 `json:"out_bytes" yaml:"out_bytes"`

	InBlockBytes  int64 `json:"in_block_bytes" yaml:"in_block_bytes"`
	OutBlockBytes int64 `json:"out_block_bytes" yaml:"out_block_bytes"`

	Defined bool `json:"defined" yaml:"defined"`

	RatioPct    float64 `json:"ratio_pct" yaml:"ratio_pct"`
	MinRatioPct float64 `json:"min_ratio_pct" yaml:"min_ratio_pct"`
	MaxRatioPct float64 `json:"max_ratio_pct" yaml:"max_ratio_pct"`

	BlockRatioPct    float64 `json:"block_ratio_pct" yaml:"block_ratio_pct"`
	MinBlockRatioPct float64 `json:"min_block_ratio_pct" yaml:"min_block_ratio_pct"`
	MaxBlockRatioPct float64 `json:"max_block_ratio_pct" yaml:"max_block_ratio_pct"`

	// BytesPerSecond is sum(in) / sum(elapsed).
	BytesPerSecond float64 `json:"bytes_per_second" yaml:"bytes_per_second"`
}

// Finalize derives the report row from the raw sums.
func (s *Summary) Finalize(methodName string) Row {
	row := Row{
		Method:        methodName,
		Count:         s.Count,
		InBytes:       s.InBytes,
		OutBytes:      s.OutBytes,
		InBlockBytes:  s.InBlockBytes,
		OutBlockBytes: s.OutBlockBytes,
	}

	if s.InBytes == 0 || s.Elapsed <= 0 {
		return row
	}

	row.Defined = true
	row.RatioPct = percent * float64(s.OutBytes) / float64(s.InBytes)
	row.MinRatioPct = percent * s.MinRatio
	row.MaxRatioPct = percent * s.MaxRatio
	row.BlockRatioPct = percent * float64(s.OutBlockBytes) / float64(s.InBlockBytes)
	row.MinBlockRatioPct = percent * s.MinBlockRatio
	row.MaxBlockRatioPct = percent * s.MaxBlockRatio
	row.BytesPerSecond = float64(s.InBytes) / s.Elapsed.Seconds()

	return row
}

// Aggregator folds per-(file,method) results into per-method summaries.
// Fold serializes access, so any number of workers may share one
// aggregator. Rows come out in the order methods were attempted, and a
// method whose every invocation failed still yields a zero-count row.
type Aggregator struct {
	mu        sync.Mutex
	blockSize int64
	order     []string
	summaries map[string]*Summary
}

// NewAggregator creates an aggregator pre-seeded with a zero summary per
// method, preserving the given order for reporting.
func NewAggregator(blockSize int64, methodNames []string) *Aggregator {
	a := &Aggregator{
		blockSize: blockSize,
		order:     make([]string, 0, len(methodNames)),
		summaries: make(map[string]*Summary, len(methodNames)),
	}

	for _, name := range methodNames {
		a.order = append(a.order, name)
		a.summaries[name] = &Summary{}
	}

	return a
}

// Fold records one result. Failed results keep their method's row alive
// but contribute nothing to the sums.
func (a *Aggregator) Fold(res Result) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.summaries[res.Method]
	if !ok {
		s = &Summary{}
		a.summaries[res.Method] = s
		a.order = append(a.order, res.Method)
	}

	if !res.OK {
		return
	}

	s.Fold(res, a.blockSize)
}

// Rows finalizes every summary in method order.
func (a *Aggregator) Rows() []Row {
	a.mu.Lock()
	defer a.mu.Unlock()

	rows := make([]Row, 0, len(a.order))
	for _, name := range a.order {
		rows = append(rows, a.summaries[name].Finalize(name))
	}

	return rows
}
