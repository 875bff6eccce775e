package logic

import (
	"context"
	"errors"
	"fmt"
	"ripple/dal"
	"ripple/dto"
	"ripple/shared"
)

type IEngagement interface {
	// CountsFor omits drops without hearts; absence means zero.
	CountsFor(ctx context.Context, dropIds []string) (map[string]int, error)
	ViewerEngaged(ctx context.Context, viewerId string, dropIds []string) (map[string]bool, error)
	Toggle(ctx context.Context, dropId, viewerId string) (*dto.HeartState, error)
}

type engagement struct {
	logger  shared.ILogger
	repo    dal.IRepo
	clock   shared.IClock
	metrics IMetrics
}

func NewEngagement(logger shared.ILogger, repo dal.IRepo, clock shared.IClock, metrics IMetrics) IEngagement {
	return &engagement{
		logger:  logger,
		repo:    repo,
		clock:   clock,
		metrics: metrics,
	}
}

func (eng *engagement) CountsFor(ctx context.Context, dropIds []string) (map[string]int, error) {
	res, err := eng.repo.GetHeartCounts(ctx, dropIds)
	if err != nil {
		return nil, fmt.Errorf("failed to count hearts: %w", err)
	}
	return res, nil
}

func (eng *engagement) ViewerEngaged(ctx context.Context, viewerId string, dropIds []string) (map[string]bool, error) {
	if viewerId == "" {
		return map[string]bool{}, nil
	}
	res, err := eng.repo.GetHeartedAmong(ctx, viewerId, dropIds)
	if err != nil {
		return nil, fmt.Errorf("failed to get hearts of %s: %w", viewerId, err)
	}
	return res, nil
}

// Toggle removes the viewer's heart if there is one, otherwise adds it. A duplicate
// insert from a racing toggle counts as hearted.
func (eng *engagement) Toggle(ctx context.Context, dropId, viewerId string) (*dto.HeartState, error) {
	removed, err := eng.repo.RemoveHeart(ctx, dropId, viewerId)
	if err != nil {
		return nil, fmt.Errorf("failed to remove heart on %s: %w", dropId, err)
	}
	hearted := false
	if !removed {
		if _, err = eng.repo.AddHeart(ctx, dropId, viewerId, eng.clock.Now()); err != nil {
			if errors.Is(err, dal.ErrMissingRef) {
				return nil, &shared.NotFoundError{Kind: "drop", Id: dropId}
			}
			return nil, fmt.Errorf("failed to add heart on %s: %w", dropId, err)
		}
		hearted = true
	}
	eng.metrics.HeartToggled(hearted)

	counts, err := eng.CountsFor(ctx, []string{dropId})
	if err != nil {
		return nil, err
	}
	return &dto.HeartState{DropId: dropId, Hearted: hearted, Count: counts[dropId]}, nil
}
