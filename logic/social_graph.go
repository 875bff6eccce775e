package logic

import (
	"context"
	"errors"
	"fmt"
	"ripple/dal"
	"ripple/shared"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../test/mocks/mock_social_graph.go -package mocks ripple/logic ISocialGraph

type ISocialGraph interface {
	// ViewerAccounts is the viewer plus everyone the viewer follows, without duplicates.
	ViewerAccounts(ctx context.Context, viewerId string) ([]string, error)
	Follow(ctx context.Context, viewerId, targetId string) error
	Unfollow(ctx context.Context, viewerId, targetId string) error
	IsFollowing(ctx context.Context, viewerId, targetId string) (bool, error)
	FollowingAmong(ctx context.Context, viewerId string, ids []string) (map[string]bool, error)
	FollowCounts(ctx context.Context, accountId string) (followers, following int, err error)
	Followees(ctx context.Context, accountId string) ([]string, error)
}

type socialGraph struct {
	logger shared.ILogger
	repo   dal.IRepo
	clock  shared.IClock
}

func NewSocialGraph(logger shared.ILogger, repo dal.IRepo, clock shared.IClock) ISocialGraph {
	return &socialGraph{
		logger: logger,
		repo:   repo,
		clock:  clock,
	}
}

func (sg *socialGraph) ViewerAccounts(ctx context.Context, viewerId string) ([]string, error) {
	followees, err := sg.repo.GetFolloweeIds(ctx, viewerId)
	if err != nil {
		return nil, fmt.Errorf("failed to get followees of %s: %w", viewerId, err)
	}
	res := make([]string, 0, len(followees)+1)
	res = append(res, viewerId)
	for _, id := range followees {
		if id != viewerId {
			res = append(res, id)
		}
	}
	return res, nil
}

// Follow is idempotent. Following an unknown account is a NotFoundError.
func (sg *socialGraph) Follow(ctx context.Context, viewerId, targetId string) error {
	isNew, err := sg.repo.AddFollow(ctx, viewerId, targetId, sg.clock.Now())
	if err != nil {
		if errors.Is(err, dal.ErrMissingRef) {
			return &shared.NotFoundError{Kind: "account", Id: targetId}
		}
		return fmt.Errorf("failed to add follow %s -> %s: %w", viewerId, targetId, err)
	}
	if isNew {
		sg.logger.Infof("Account %s now follows %s", viewerId, targetId)
	}
	return nil
}

func (sg *socialGraph) Unfollow(ctx context.Context, viewerId, targetId string) error {
	removed, err := sg.repo.RemoveFollow(ctx, viewerId, targetId)
	if err != nil {
		return fmt.Errorf("failed to remove follow %s -> %s: %w", viewerId, targetId, err)
	}
	if removed {
		sg.logger.Infof("Account %s no longer follows %s", viewerId, targetId)
	}
	return nil
}

func (sg *socialGraph) IsFollowing(ctx context.Context, viewerId, targetId string) (bool, error) {
	among, err := sg.FollowingAmong(ctx, viewerId, []string{targetId})
	if err != nil {
		return false, err
	}
	return among[targetId], nil
}

func (sg *socialGraph) FollowingAmong(ctx context.Context, viewerId string, ids []string) (map[string]bool, error) {
	if viewerId == "" {
		return map[string]bool{}, nil
	}
	res, err := sg.repo.GetFollowedAmong(ctx, viewerId, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check follows of %s: %w", viewerId, err)
	}
	return res, nil
}

func (sg *socialGraph) FollowCounts(ctx context.Context, accountId string) (followers, following int, err error) {
	followers, following, err = sg.repo.GetFollowCounts(ctx, accountId)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count follows of %s: %w", accountId, err)
	}
	return followers, following, nil
}

func (sg *socialGraph) Followees(ctx context.Context, accountId string) ([]string, error) {
	res, err := sg.repo.GetFolloweeIds(ctx, accountId)
	if err != nil {
		return nil, fmt.Errorf("failed to get followees of %s: %w", accountId, err)
	}
	return res, nil
}
