package logic

import (
	"context"
	"fmt"
	"golang.org/x/sync/errgroup"
	"ripple/dal"
	"ripple/dto"
	"ripple/shared"
	"ripple/texts"
	"sort"
	"time"
)

type ITimeline interface {
	// BuildTimeline composes the viewer's own drops and those of followed accounts.
	BuildTimeline(ctx context.Context, viewerId string) ([]dto.TimelineItem, error)
	// BuildProfileTimeline restricts the timeline to one author. viewerId may be empty.
	BuildProfileTimeline(ctx context.Context, viewerId, targetId string) ([]dto.TimelineItem, error)
	UsedSlots(ctx context.Context, viewerId, today string) ([]shared.Slot, error)
	ComposerState(ctx context.Context, viewerId string, loc *time.Location) (*dto.ComposerState, error)
}

type timeline struct {
	cfg        *shared.Config
	logger     shared.ILogger
	idb        shared.IdBuilder
	clock      shared.IClock
	txt        texts.ITexts
	graph      ISocialGraph
	drops      IDropStore
	engagement IEngagement
	threads    IRippleThreads
	dir        IDirectory
	metrics    IMetrics
}

func NewTimeline(
	cfg *shared.Config,
	logger shared.ILogger,
	clock shared.IClock,
	txt texts.ITexts,
	graph ISocialGraph,
	drops IDropStore,
	engagement IEngagement,
	threads IRippleThreads,
	dir IDirectory,
	metrics IMetrics,
) ITimeline {
	return &timeline{
		cfg:        cfg,
		logger:     logger,
		idb:        shared.IdBuilder{Host: cfg.Host},
		clock:      clock,
		txt:        txt,
		graph:      graph,
		drops:      drops,
		engagement: engagement,
		threads:    threads,
		dir:        dir,
		metrics:    metrics,
	}
}

func (tl *timeline) BuildTimeline(ctx context.Context, viewerId string) ([]dto.TimelineItem, error) {
	accounts, err := tl.graph.ViewerAccounts(ctx, viewerId)
	if err != nil {
		return nil, err
	}
	drops, err := tl.drops.ListFor(ctx, accounts)
	if err != nil {
		return nil, err
	}
	res, err := tl.compose(ctx, viewerId, drops)
	if err != nil {
		return nil, err
	}
	tl.metrics.TimelineBuilt("home", len(res))
	return res, nil
}

func (tl *timeline) BuildProfileTimeline(ctx context.Context, viewerId, targetId string) ([]dto.TimelineItem, error) {
	drops, err := tl.drops.ListFor(ctx, []string{targetId})
	if err != nil {
		return nil, err
	}
	res, err := tl.compose(ctx, viewerId, drops)
	if err != nil {
		return nil, err
	}
	tl.metrics.TimelineBuilt("profile", len(res))
	return res, nil
}

// compose enriches drops with sub-fetches that run concurrently and are all
// batched by id set. Missing entries mean zero, false or an empty thread.
func (tl *timeline) compose(ctx context.Context, viewerId string, drops []*dal.Drop) ([]dto.TimelineItem, error) {

	res := make([]dto.TimelineItem, 0, len(drops))
	if len(drops) == 0 {
		return res, nil
	}

	dropIds := make([]string, 0, len(drops))
	authorIds := make([]string, 0, len(drops))
	for _, d := range drops {
		dropIds = append(dropIds, d.Id)
		authorIds = append(authorIds, d.AuthorId)
	}

	var counts map[string]int
	var engaged map[string]bool
	var threads map[string][]dto.RippleView
	var authors map[string]*dal.Account

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = tl.engagement.CountsFor(gctx, dropIds)
		return
	})
	g.Go(func() (err error) {
		engaged, err = tl.engagement.ViewerEngaged(gctx, viewerId, dropIds)
		return
	})
	g.Go(func() (err error) {
		threads, err = tl.threads.ThreadsFor(gctx, dropIds)
		return
	})
	g.Go(func() (err error) {
		authors, err = tl.dir.ProfilesByIds(gctx, distinct(authorIds))
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compose timeline for %q: %w", viewerId, err)
	}

	for _, d := range drops {
		ripples := threads[d.Id]
		if ripples == nil {
			ripples = []dto.RippleView{}
		}
		res = append(res, dto.TimelineItem{
			Id:         d.Id,
			Author:     authorView(&tl.idb, d.AuthorId, authors[d.AuthorId]),
			Body:       d.Body,
			CreatedAt:  d.CreatedAt,
			UpdatedAt:  d.UpdatedAt,
			Slot:       d.Slot,
			Url:        tl.idb.DropUrl(d.Id),
			HeartCount: counts[d.Id],
			Hearted:    engaged[d.Id],
			Ripples:    ripples,
		})
	}
	sort.SliceStable(res, func(i, j int) bool {
		return shared.NewerFirst(res[i].CreatedAt, res[i].Id, res[j].CreatedAt, res[j].Id)
	})
	return res, nil
}

func (tl *timeline) UsedSlots(ctx context.Context, viewerId, today string) ([]shared.Slot, error) {
	return tl.drops.UsedSlots(ctx, viewerId, today)
}

// ComposerState reports the slot a drop submitted now would use, in loc.
func (tl *timeline) ComposerState(ctx context.Context, viewerId string, loc *time.Location) (*dto.ComposerState, error) {
	slot := shared.SlotAt(tl.clock.Now(), loc)
	used, err := tl.UsedSlots(ctx, viewerId, slot.Date)
	if err != nil {
		return nil, err
	}
	res := &dto.ComposerState{Slot: slot, UsedSlots: used}
	for _, s := range used {
		if s == slot {
			res.SlotUsed = true
		}
	}
	if slot.Period == shared.PeriodAM {
		res.Prompt = tl.txt.Get("prompt_am.txt")
		if res.SlotUsed {
			res.Offered = tl.txt.Lines("offered_am.txt")
		}
	} else {
		res.Prompt = tl.txt.Get("prompt_pm.txt")
		if res.SlotUsed {
			res.Offered = tl.txt.Lines("offered_pm.txt")
		}
	}
	return res, nil
}
