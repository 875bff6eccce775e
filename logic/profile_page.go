package logic

import (
	"context"
	"golang.org/x/sync/errgroup"
	"ripple/dto"
	"ripple/shared"
	"ripple/texts"
	"sort"
	"time"
)

type IProfilePage interface {
	Profile(ctx context.Context, viewerId, handle string) (*dto.ProfilePage, error)
	Following(ctx context.Context, viewerId, handle string) (*dto.FollowingPage, error)
}

type profilePage struct {
	cfg      *shared.Config
	logger   shared.ILogger
	idb      shared.IdBuilder
	clock    shared.IClock
	txt      texts.ITexts
	graph    ISocialGraph
	dir      IDirectory
	timeline ITimeline
}

func NewProfilePage(
	cfg *shared.Config,
	logger shared.ILogger,
	clock shared.IClock,
	txt texts.ITexts,
	graph ISocialGraph,
	dir IDirectory,
	timeline ITimeline,
) IProfilePage {
	return &profilePage{
		cfg:      cfg,
		logger:   logger,
		idb:      shared.IdBuilder{Host: cfg.Host},
		clock:    clock,
		txt:      txt,
		graph:    graph,
		dir:      dir,
		timeline: timeline,
	}
}

func (pp *profilePage) Profile(ctx context.Context, viewerId, handle string) (*dto.ProfilePage, error) {
	acct, err := pp.dir.ProfileByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	res := &dto.ProfilePage{
		Author:     authorView(&pp.idb, acct.Id, acct),
		IsSelf:     viewerId == acct.Id,
		DailyQuote: pp.dailyQuote(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.FollowerCount, res.FollowingCount, err = pp.graph.FollowCounts(gctx, acct.Id)
		return
	})
	if !res.IsSelf {
		g.Go(func() (err error) {
			res.IsFollowing, err = pp.graph.IsFollowing(gctx, viewerId, acct.Id)
			return
		})
	}
	g.Go(func() (err error) {
		res.Items, err = pp.timeline.BuildProfileTimeline(gctx, viewerId, acct.Id)
		return
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// dailyQuote changes once per UTC day.
func (pp *profilePage) dailyQuote() string {
	quotes := pp.txt.Lines("quotes.txt")
	if len(quotes) == 0 {
		return ""
	}
	days := pp.clock.Now().Unix() / int64(24*time.Hour/time.Second)
	return quotes[days%int64(len(quotes))]
}

// Following lists who the profile follows, ordered by handle, each flagged with
// whether the viewer follows them.
func (pp *profilePage) Following(ctx context.Context, viewerId, handle string) (*dto.FollowingPage, error) {
	acct, err := pp.dir.ProfileByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	res := &dto.FollowingPage{
		Author:    authorView(&pp.idb, acct.Id, acct),
		Following: make([]dto.ProfileEntry, 0),
	}
	ids, err := pp.graph.Followees(ctx, acct.Id)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return res, nil
	}
	profiles, err := pp.dir.ProfilesByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	viewerFollows, err := pp.graph.FollowingAmong(ctx, viewerId, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		res.Following = append(res.Following, dto.ProfileEntry{
			Author:      authorView(&pp.idb, id, profiles[id]),
			IsFollowing: viewerFollows[id],
		})
	}
	sort.SliceStable(res.Following, func(i, j int) bool {
		a, b := res.Following[i].Author, res.Following[j].Author
		if a.Handle != b.Handle {
			return a.Handle < b.Handle
		}
		return a.Id < b.Id
	})
	return res, nil
}
