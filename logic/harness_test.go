package logic_test

import (
	"ripple/dal"
	"ripple/logic"
	"ripple/shared"
	"ripple/test"
	"ripple/texts"
	"testing"
	"time"
)

type harness struct {
	cfg     *shared.Config
	repo    dal.IRepo
	clock   *test.FakeClock
	metrics logic.IMetrics
	txt     texts.ITexts
	graph   logic.ISocialGraph
	drops   logic.IDropStore
	eng     logic.IEngagement
	dir     logic.IDirectory
	threads logic.IRippleThreads
	tl      logic.ITimeline
	profile logic.IProfilePage
}

func newHarness(t *testing.T) *harness {
	h := &harness{
		cfg:   &shared.Config{Host: "ripple.test"},
		repo:  test.OpenTestRepo(t),
		clock: test.NewFakeClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)),
		txt:   texts.NewTexts(),
	}
	logger := test.NewDiscardLogger()
	h.metrics = logic.NewMetrics(h.cfg)
	h.graph = logic.NewSocialGraph(logger, h.repo, h.clock)
	h.drops = logic.NewDropStore(logger, h.repo, h.clock, h.metrics)
	h.eng = logic.NewEngagement(logger, h.repo, h.clock, h.metrics)
	h.dir = logic.NewDirectory(h.cfg, logger, h.repo, h.clock, h.graph)
	h.threads = logic.NewRippleThreads(h.cfg, logger, h.repo, h.clock, h.dir, h.metrics)
	h.tl = logic.NewTimeline(h.cfg, logger, h.clock, h.txt, h.graph, h.drops, h.eng, h.threads, h.dir, h.metrics)
	h.profile = logic.NewProfilePage(h.cfg, logger, h.clock, h.txt, h.graph, h.dir, h.tl)
	return h
}

func am(date string) shared.Slot {
	return test.Slot(date, shared.PeriodAM)
}

func pm(date string) shared.Slot {
	return test.Slot(date, shared.PeriodPM)
}
