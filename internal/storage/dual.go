package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/roomprefs/internal/colors"
)

const (
	// ReadPrimary makes reads use the primary backend.
	ReadPrimary = "primary"
	// ReadSecondary makes reads use the secondary backend.
	ReadSecondary = "secondary"
)

// DualOptions controls DualBackend behavior.
type DualOptions struct {
	ReadFrom   string
	VerifyOnly bool
}

// WriteMetrics tracks basic write performance and reliability counters.
type WriteMetrics struct {
	WriteOperations        int64
	PrimaryWriteFailures   int64
	SecondaryWriteFailures int64
	TotalWriteLatency      time.Duration
	MaxWriteLatency        time.Duration
}

// AverageWriteLatency returns the mean latency for write operations.
func (m WriteMetrics) AverageWriteLatency() time.Duration {
	if m.WriteOperations == 0 {
		return 0
	}
	return m.TotalWriteLatency / time.Duration(m.WriteOperations)
}

// ConsistencyDiff is one key whose value differs between the backends.
type ConsistencyDiff struct {
	Key       string
	Primary   string
	Secondary string
}

// ConsistencyReport contains cross-backend consistency results for one
// profile.
type ConsistencyReport struct {
	Profile            string
	PrimaryCount       int
	SecondaryCount     int
	MissingInPrimary   []string
	MissingInSecondary []string
	Diffs              []ConsistencyDiff
	Consistent         bool
}

// DualBackend writes to a primary then a secondary backend and reads from
// the selected one. A failed secondary write never fails the caller; reads
// move to the primary instead.
type DualBackend struct {
	primary    Backend
	secondary  Backend
	readFrom   string
	verifyOnly bool

	backendMu sync.RWMutex

	metricsMu sync.Mutex
	metrics   WriteMetrics
}

var _ Backend = (*DualBackend)(nil)

// NewDual creates a DualBackend from explicit backend instances.
func NewDual(primary, secondary Backend, opts DualOptions) (*DualBackend, error) {
	if primary == nil {
		return nil, fmt.Errorf("dual backend: primary backend is required")
	}
	if secondary == nil {
		return nil, fmt.Errorf("dual backend: secondary backend is required")
	}

	readFrom := strings.ToLower(strings.TrimSpace(opts.ReadFrom))
	if readFrom == "" {
		readFrom = ReadPrimary
	}
	if readFrom != ReadPrimary && readFrom != ReadSecondary {
		colors.Warning(fmt.Sprintf("invalid dual read backend '%s', defaulting to primary", opts.ReadFrom))
		readFrom = ReadPrimary
	}

	return &DualBackend{
		primary:    primary,
		secondary:  secondary,
		readFrom:   readFrom,
		verifyOnly: opts.VerifyOnly,
	}, nil
}

func (d *DualBackend) Load(ctx context.Context, profile string) (map[string]string, error) {
	return d.readBackend().Load(ctx, profile)
}

func (d *DualBackend) Profiles(ctx context.Context) ([]string, error) {
	return d.readBackend().Profiles(ctx)
}

func (d *DualBackend) Store(ctx context.Context, profile, key, value string) error {
	return d.write(fmt.Sprintf("store %s/%s", profile, key), func(b Backend) error {
		return b.Store(ctx, profile, key, value)
	})
}

func (d *DualBackend) Delete(ctx context.Context, profile, key string) error {
	return d.write(fmt.Sprintf("delete %s/%s", profile, key), func(b Backend) error {
		return b.Delete(ctx, profile, key)
	})
}

func (d *DualBackend) write(operation string, fn func(Backend) error) error {
	start := time.Now()
	if err := fn(d.primary); err != nil {
		d.recordWrite(start, true, false)
		return err
	}

	secondaryFailed := false
	if !d.verifyOnly {
		if err := fn(d.secondary); err != nil {
			secondaryFailed = true
			d.handleSecondaryWriteFailure(operation, err)
		}
	}

	d.recordWrite(start, false, secondaryFailed)
	return nil
}

// Close closes both backends.
func (d *DualBackend) Close() error {
	return errors.Join(d.primary.Close(), d.secondary.Close())
}

// Metrics returns a snapshot of write metrics.
func (d *DualBackend) Metrics() WriteMetrics {
	d.metricsMu.Lock()
	defer d.metricsMu.Unlock()
	return d.metrics
}

// Verify compares the profile in both backends and reports discrepancies.
func (d *DualBackend) Verify(ctx context.Context, profile string) (ConsistencyReport, error) {
	primary, err := d.primary.Load(ctx, profile)
	if err != nil {
		return ConsistencyReport{}, fmt.Errorf("dual backend consistency: load primary: %w", err)
	}
	secondary, err := d.secondary.Load(ctx, profile)
	if err != nil {
		return ConsistencyReport{}, fmt.Errorf("dual backend consistency: load secondary: %w", err)
	}

	report := ConsistencyReport{
		Profile:        profile,
		PrimaryCount:   len(primary),
		SecondaryCount: len(secondary),
	}
	for key, value := range primary {
		other, ok := secondary[key]
		switch {
		case !ok:
			report.MissingInSecondary = append(report.MissingInSecondary, key)
		case other != value:
			report.Diffs = append(report.Diffs, ConsistencyDiff{Key: key, Primary: value, Secondary: other})
		}
	}
	for key := range secondary {
		if _, ok := primary[key]; !ok {
			report.MissingInPrimary = append(report.MissingInPrimary, key)
		}
	}
	sort.Strings(report.MissingInPrimary)
	sort.Strings(report.MissingInSecondary)
	sort.Slice(report.Diffs, func(i, j int) bool { return report.Diffs[i].Key < report.Diffs[j].Key })

	for _, key := range report.MissingInSecondary {
		colors.Warning(fmt.Sprintf("dual backend consistency discrepancy: %s/%s missing in secondary", profile, key))
	}
	for _, key := range report.MissingInPrimary {
		colors.Warning(fmt.Sprintf("dual backend consistency discrepancy: %s/%s missing in primary", profile, key))
	}
	for _, diff := range report.Diffs {
		colors.Warning(fmt.Sprintf("dual backend consistency discrepancy: %s/%s differs (primary=%q secondary=%q)", profile, diff.Key, diff.Primary, diff.Secondary))
	}

	report.Consistent = len(report.MissingInPrimary) == 0 &&
		len(report.MissingInSecondary) == 0 &&
		len(report.Diffs) == 0
	return report, nil
}

func (d *DualBackend) recordWrite(start time.Time, primaryFailed, secondaryFailed bool) {
	d.metricsMu.Lock()
	defer d.metricsMu.Unlock()

	latency := time.Since(start)
	d.metrics.WriteOperations++
	d.metrics.TotalWriteLatency += latency
	if latency > d.metrics.MaxWriteLatency {
		d.metrics.MaxWriteLatency = latency
	}
	if primaryFailed {
		d.metrics.PrimaryWriteFailures++
	}
	if secondaryFailed {
		d.metrics.SecondaryWriteFailures++
	}
}

func (d *DualBackend) readBackend() Backend {
	d.backendMu.RLock()
	defer d.backendMu.RUnlock()

	if d.readFrom == ReadSecondary {
		return d.secondary
	}
	return d.primary
}

func (d *DualBackend) handleSecondaryWriteFailure(operation string, err error) {
	d.backendMu.Lock()
	defer d.backendMu.Unlock()

	if d.readFrom == ReadSecondary {
		d.readFrom = ReadPrimary
		colors.Warning(fmt.Sprintf("dual write: secondary %s failed; switching reads to primary: %v", operation, err))
		return
	}

	colors.Warning(fmt.Sprintf("dual write: secondary %s failed, continuing with primary only: %v", operation, err))
}
