package blankfill

import (
	"context"
	"fmt"
)

// Job is one container fill within a batch.
type Job struct {
	Input      string          `yaml:"input" json:"input"`
	Output     string          `yaml:"output" json:"output"`
	Assignment FieldAssignment `yaml:"assignment" json:"assignment"`
}

// FillBatch fills independent containers concurrently. Every job parses its
// own tree; reports are returned in job order. The first failure cancels
// the jobs that have not started yet.
func (x *Filler) FillBatch(
	ctx context.Context,
	jobs []Job,
	optFns ...func(*Options),
) ([]*Report, error) {
	if len(jobs) == 0 {
		return nil, fmt.Errorf("fill batch: %w", ErrEmptyJobs)
	}
	opts := resolveOptions(optFns)
	r := opts.runner(ctx)
	taskCtx := runnerContext(ctx, r)

	x.log.Debug("Starting batch", "jobs", len(jobs), "concurrency", opts.Concurrency)
	reports := make([]*Report, len(jobs))
	for i, job := range jobs {
		r.Go(func() error {
			if err := taskCtx.Err(); err != nil {
				return err
			}
			rep, err := x.FillArchive(taskCtx, job.Input, job.Output, job.Assignment, optFns...)
			if err != nil {
				return fmt.Errorf("job %d (%s): %w", i, job.Input, err)
			}
			reports[i] = rep
			return nil
		})
	}

	if err := r.Wait(); err != nil {
		x.log.Debug("Batch failed", "error", err)
		return nil, err
	}
	x.log.Info("Batch completed", "jobs", len(jobs))
	return reports, nil
}
