package reaper

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// defaultBatchSize bounds how many rows one UPDATE sweeps so the reaper
// holds row locks briefly and can honor shutdown between batches.
const defaultBatchSize = 500

// Repository defines the data access interface for reaper sweeps. Both
// methods soft-delete up to limit rows whose expiry has passed, returning
// how many rows were marked. The update must be conditional
// (soft_deleted = false AND expires_at <= now) so the sweep never
// un-deletes and is safe against concurrent request-path writes.
type Repository interface {
	ReapPosts(ctx context.Context, now time.Time, limit int) (int64, error)
	ReapComments(ctx context.Context, now time.Time, limit int) (int64, error)
}

// Summary reports one reaper run.
type Summary struct {
	PostsExpired    int64     `json:"postsExpired"`
	CommentsExpired int64     `json:"commentsExpired"`
	StartedAt       time.Time `json:"startedAt"`
	FinishedAt      time.Time `json:"finishedAt"`
	Errors          []string  `json:"errors"`
}

// Reaper sweeps expired posts and comments into the soft-deleted state.
// It never extends, never un-deletes, and stops between batches when its
// context is canceled.
type Reaper struct {
	repo      Repository
	logger    *slog.Logger
	batchSize int
	now       func() time.Time
}

// New creates a reaper.
func New(repo Repository, logger *slog.Logger) *Reaper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reaper{
		repo:      repo,
		logger:    logger,
		batchSize: defaultBatchSize,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run executes one full sweep. The post and comment sweeps are
// independent; an error in one is recorded in the summary and does not
// abort the other. Transient batch failures are retried once.
func (r *Reaper) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{StartedAt: r.now()}
	cutoff := summary.StartedAt

	summary.PostsExpired = r.sweep(ctx, "posts", cutoff, r.repo.ReapPosts, summary)
	summary.CommentsExpired = r.sweep(ctx, "comments", cutoff, r.repo.ReapComments, summary)

	summary.FinishedAt = r.now()
	r.logger.Info("reaper run finished",
		"posts_expired", summary.PostsExpired,
		"comments_expired", summary.CommentsExpired,
		"errors", len(summary.Errors),
		"duration", summary.FinishedAt.Sub(summary.StartedAt))

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

type sweepFunc func(ctx context.Context, now time.Time, limit int) (int64, error)

func (r *Reaper) sweep(ctx context.Context, name string, cutoff time.Time, fn sweepFunc, summary *Summary) int64 {
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s sweep interrupted: %v", name, err))
			return total
		}

		n, err := fn(ctx, cutoff, r.batchSize)
		if err != nil {
			// One retry per batch covers transient failures.
			r.logger.Warn("reaper batch failed, retrying", "sweep", name, "error", err)
			n, err = fn(ctx, cutoff, r.batchSize)
			if err != nil {
				r.logger.Error("reaper batch failed after retry", "sweep", name, "error", err)
				summary.Errors = append(summary.Errors, fmt.Sprintf("%s sweep: %v", name, err))
				return total
			}
		}

		total += n
		if n < int64(r.batchSize) {
			return total
		}
	}
}
