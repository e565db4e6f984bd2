package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/esports-hub/internal/platform/logging"
)

const (
	normalizeStatusSuccess = "success"
	normalizeStatusFailed  = "failed"

	defaultMaintenanceWorkers = 4
)

// Rewriter stores one resource back in its current shape and returns the
// number of records written.
type Rewriter interface {
	Rewrite(ctx context.Context) (int, error)
}

type NormalizeResourceResult struct {
	Resource   string `json:"resource"`
	Records    int    `json:"records"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

type NormalizeResult struct {
	Resources    []NormalizeResourceResult `json:"resources"`
	SuccessCount int                       `json:"successCount"`
	FailedCount  int                       `json:"failedCount"`
}

// MaintenanceService rewrites stored documents through the upgrade chain so
// legacy shapes disappear from storage.
type MaintenanceService struct {
	rewriters map[string]Rewriter
	workers   int
	logger    *logging.Logger
}

func NewMaintenanceService(rewriters map[string]Rewriter, workers int, logger *logging.Logger) *MaintenanceService {
	if workers < 1 {
		workers = defaultMaintenanceWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MaintenanceService{
		rewriters: rewriters,
		workers:   workers,
		logger:    logger,
	}
}

// Normalize rewrites the named resources, or all of them when none are named.
// A failing resource does not stop the others.
func (s *MaintenanceService) Normalize(ctx context.Context, resources []string) (NormalizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MaintenanceService.Normalize")
	defer span.End()

	if len(resources) == 0 {
		for name := range s.rewriters {
			resources = append(resources, name)
		}
	}
	for _, name := range resources {
		if _, ok := s.rewriters[name]; !ok {
			return NormalizeResult{}, fmt.Errorf("%w: unknown resource %q", ErrInvalidInput, name)
		}
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return NormalizeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan NormalizeResourceResult, len(resources))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, name := range resources {
		name := name
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := NormalizeResourceResult{Resource: name, Status: normalizeStatusSuccess}
			records, err := s.rewriters[name].Rewrite(ctx)
			row.Records = records
			row.DurationMs = time.Since(start).Milliseconds()
			if err != nil {
				row.Status = normalizeStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
				s.logger.ErrorContext(ctx, "normalize resource failed", "resource", name, "error", err)
			} else {
				successCount.Add(1)
				s.logger.InfoContext(ctx, "resource normalized", "resource", name, "records", records)
			}
			results <- row
		}); err != nil {
			workers.Done()
			return NormalizeResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	var result NormalizeResult
	for row := range results {
		result.Resources = append(result.Resources, row)
	}
	sort.SliceStable(result.Resources, func(i, j int) bool {
		return result.Resources[i].Resource < result.Resources[j].Resource
	})
	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}
