// Package probe exercises a running catalog service over HTTP and checks the
// observable properties of every route.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/catalog/internal/domain/catalog"
	"github.com/okian/catalog/internal/domain/dedupe"
	"github.com/okian/catalog/internal/domain/sampling"
	"github.com/okian/catalog/pkg/logger"
)

// Run executes every check against cfg.BaseURL. The report is returned even
// when checks fail; the error then wraps ErrViolations.
func Run(ctx context.Context, cfg *Config) (*Report, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	size := cfg.SampleSize
	if size <= 0 {
		size = sampling.DefaultSize
	}

	report := &Report{RunID: uuid.NewString(), StartTime: time.Now()}
	log := logger.Get().Named("probe")
	ctx = logger.WithRequestID(ctx, report.RunID)

	log.Info(ctx, "starting catalog probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("iterations", cfg.Iterations),
		logger.Int("sampleSize", size),
		logger.String("dataset", cfg.DatasetPath),
		logger.Duration("timeout", cfg.Timeout))

	distinct, err := loadDistinct(ctx, cfg.DatasetPath)
	if err != nil {
		return nil, err
	}

	c := newClient(cfg.BaseURL, cfg.Timeout)
	fail := func(vs []string) {
		for _, v := range vs {
			log.Warn(ctx, "check failed", logger.String("violation", v))
		}
		report.Violations = append(report.Violations, vs...)
	}

	// Step 1: service health
	resp, err := c.get(ctx, "/healthz")
	if err != nil {
		return nil, err
	}
	report.Requests++
	if resp.status != http.StatusOK {
		fail([]string{fmt.Sprintf("/healthz: status %d, want 200", resp.status)})
	}

	// Step 2: random samples, spread over the worker pool
	if err := sample(ctx, c, cfg, size, distinct, report, fail); err != nil {
		return report, err
	}

	// Step 3: fixed routes
	for _, rc := range []struct {
		path  string
		check func(response) []string
	}{
		{"/unauthorized", func(r response) []string { return checkEmptyStatus("/unauthorized", r, http.StatusUnauthorized) }},
		{"/not-found", func(r response) []string { return checkEmptyStatus("/not-found", r, http.StatusNotFound) }},
		{"/scores", checkScores},
	} {
		resp, err := c.get(ctx, rc.path)
		if err != nil {
			return report, err
		}
		report.Requests++
		fail(rc.check(resp))
	}

	report.Duration = time.Since(report.StartTime)
	log.Info(ctx, "probe finished",
		logger.Int("requests", report.Requests),
		logger.Int("samples", report.Samples),
		logger.Int("violations", len(report.Violations)),
		logger.Duration("duration", report.Duration))

	if !report.OK() {
		return report, fmt.Errorf("%w: %d", ErrViolations, len(report.Violations))
	}
	return report, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg == nil:
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	case cfg.BaseURL == "":
		return fmt.Errorf("%w: base url is required", ErrInvalidConfig)
	case cfg.Iterations < 0:
		return fmt.Errorf("%w: iterations must be non-negative", ErrInvalidConfig)
	}
	return nil
}

// loadDistinct reads the dataset and indexes its distinct entries by
// canonical encoding. An empty path disables membership checks.
func loadDistinct(ctx context.Context, path string) (map[string]struct{}, error) {
	if path == "" {
		return nil, nil
	}
	c, err := catalog.Load(ctx, catalog.Source{Path: path})
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	entries := c.Distinct()
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		canon, err := dedupe.Canonical(e)
		if err != nil {
			return nil, fmt.Errorf("load dataset: %w", err)
		}
		set[string(canon)] = struct{}{}
	}
	return set, nil
}

// sample issues cfg.Iterations /random-entries calls from cfg.Workers
// goroutines. The first transport error stops the run.
func sample(ctx context.Context, c *client, cfg *Config, size int, distinct map[string]struct{}, report *Report, fail func([]string)) error {
	log := logger.Get().Named("probe")
	workers := max(1, min(cfg.Workers, cfg.Iterations))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int, workers*workerChannelMultiplier)
	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				resp, err := c.get(ctx, "/random-entries")
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
						cancel()
					}
					mu.Unlock()
					continue
				}
				vs := checkSample(resp, size, distinct)

				mu.Lock()
				report.Requests++
				report.Samples++
				fail(vs)
				mu.Unlock()

				if cfg.Verbose && len(vs) == 0 {
					log.Debug(ctx, "sample ok", logger.Int("iteration", i), logger.Int("bytes", len(resp.body)))
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < cfg.Iterations; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
