package logic

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"ripple/dal"
	"ripple/dto"
	"ripple/shared"
	"sort"
)

type IRippleThreads interface {
	// ThreadsFor returns ripples per drop, newest first. Drops without ripples are absent.
	ThreadsFor(ctx context.Context, dropIds []string) (map[string][]dto.RippleView, error)
	Create(ctx context.Context, dropId, authorId, body string) (*dto.RippleView, error)
	Delete(ctx context.Context, rippleId, callerId string) error
}

type rippleThreads struct {
	cfg     *shared.Config
	logger  shared.ILogger
	repo    dal.IRepo
	idb     shared.IdBuilder
	clock   shared.IClock
	dir     IDirectory
	metrics IMetrics
}

func NewRippleThreads(
	cfg *shared.Config,
	logger shared.ILogger,
	repo dal.IRepo,
	clock shared.IClock,
	dir IDirectory,
	metrics IMetrics,
) IRippleThreads {
	return &rippleThreads{
		cfg:     cfg,
		logger:  logger,
		repo:    repo,
		idb:     shared.IdBuilder{Host: cfg.Host},
		clock:   clock,
		dir:     dir,
		metrics: metrics,
	}
}

func (rt *rippleThreads) ThreadsFor(ctx context.Context, dropIds []string) (map[string][]dto.RippleView, error) {
	res := make(map[string][]dto.RippleView)
	ripples, err := rt.repo.GetRipplesForDrops(ctx, dropIds)
	if err != nil {
		return nil, fmt.Errorf("failed to get ripples: %w", err)
	}
	if len(ripples) == 0 {
		return res, nil
	}
	sort.SliceStable(ripples, func(i, j int) bool {
		return shared.NewerFirst(ripples[i].CreatedAt, ripples[i].Id, ripples[j].CreatedAt, ripples[j].Id)
	})

	authorIds := make([]string, 0, len(ripples))
	for _, r := range ripples {
		authorIds = append(authorIds, r.AuthorId)
	}
	authors, err := rt.dir.ProfilesByIds(ctx, distinct(authorIds))
	if err != nil {
		return nil, err
	}
	for _, r := range ripples {
		res[r.DropId] = append(res[r.DropId], rippleView(&rt.idb, r, authors[r.AuthorId]))
	}
	return res, nil
}

func (rt *rippleThreads) Create(ctx context.Context, dropId, authorId, body string) (*dto.RippleView, error) {
	body, err := shared.ValidateBody("Ripple", body)
	if err != nil {
		return nil, err
	}
	ripple := &dal.Ripple{
		Id:        uuid.Must(uuid.NewV7()).String(),
		DropId:    dropId,
		AuthorId:  authorId,
		Body:      body,
		CreatedAt: rt.clock.Now(),
	}
	err = rt.repo.AddRipple(ctx, ripple)
	if errors.Is(err, dal.ErrMissingRef) {
		return nil, &shared.NotFoundError{Kind: "drop", Id: dropId}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add ripple on %s: %w", dropId, err)
	}
	rt.metrics.RippleCreated()

	authors, err := rt.dir.ProfilesByIds(ctx, []string{authorId})
	if err != nil {
		return nil, err
	}
	view := rippleView(&rt.idb, ripple, authors[authorId])
	return &view, nil
}

func (rt *rippleThreads) Delete(ctx context.Context, rippleId, callerId string) error {
	deleted, err := rt.repo.DeleteRipple(ctx, rippleId, callerId)
	if err != nil {
		return fmt.Errorf("failed to delete ripple %s: %w", rippleId, err)
	}
	if deleted {
		return nil
	}
	ripple, err := rt.repo.GetRipple(ctx, rippleId)
	if err != nil {
		return fmt.Errorf("failed to get ripple %s: %w", rippleId, err)
	}
	if ripple == nil {
		return &shared.NotFoundError{Kind: "ripple", Id: rippleId}
	}
	return &shared.AuthorizationError{Action: "delete this ripple"}
}
