package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cv-customizer/internal/domain"
)

// BatchFailure is a record that could not be processed. Job is nil when the
// record itself was unreadable or invalid.
type BatchFailure struct {
	File string
	Job  *domain.CustomizationJob
	Err  error
}

type BatchResult struct {
	Succeeded []*domain.CustomizationJob
	Failed    []BatchFailure
}

func (r *BatchResult) OK() bool { return len(r.Failed) == 0 }

// RunBatch processes every *.json record in dir in name order. A failing
// record is recorded and the batch moves on, unless failFast is set. The
// returned error is reserved for problems with the batch itself: an
// unreadable directory, cancellation, or the first failure under failFast.
func (p *Processor) RunBatch(ctx context.Context, dir string, failFast bool) (*BatchResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list job records: %w", err)
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("failed to read jobs directory: %w", err)
	}
	sort.Strings(files)
	p.log.Info("starting batch", "dir", dir, "records", len(files))

	res := &BatchResult{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		job, err := p.runFile(ctx, f)
		if err != nil {
			res.Failed = append(res.Failed, BatchFailure{File: f, Job: job, Err: err})
			p.log.Error("job record failed", "file", f, "error", err)
			if failFast {
				return res, fmt.Errorf("%s: %w", filepath.Base(f), err)
			}
			continue
		}
		res.Succeeded = append(res.Succeeded, job)
	}
	p.log.Info("batch finished", "succeeded", len(res.Succeeded), "failed", len(res.Failed))
	return res, nil
}

func (p *Processor) runFile(ctx context.Context, path string) (*domain.CustomizationJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job record: %w", err)
	}
	return p.ProcessRecord(ctx, path, data)
}
