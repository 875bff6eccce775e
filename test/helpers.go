package test

import (
	"context"
	"fmt"
	"github.com/charmbracelet/log"
	"go.uber.org/mock/gomock"
	"io"
	"path/filepath"
	"ripple/dal"
	"ripple/shared"
	"sort"
	"sync"
	"testing"
	"time"
)

// NewDiscardLogger returns a real logger that writes nowhere.
func NewDiscardLogger() shared.ILogger {
	return log.New(io.Discard)
}

type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now.UTC()}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Set(now time.Time) {
	c.mu.Lock()
	c.now = now.UTC()
	c.mu.Unlock()
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// OpenTestRepo creates a migrated SQLite store in the test's temp dir.
func OpenTestRepo(t *testing.T) dal.IRepo {
	t.Helper()
	cfg := &shared.Config{
		DbDriver: shared.DriverSqlite,
		DbFile:   filepath.Join(t.TempDir(), "ripple.db"),
	}
	repo := dal.NewRepo(cfg, NewDiscardLogger())
	repo.InitUpdateDb()
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// SeedAccount inserts an account; an empty handle leaves it unset.
func SeedAccount(t *testing.T, repo dal.IRepo, id, handle string) *dal.Account {
	t.Helper()
	ctx := context.Background()
	acct := &dal.Account{
		Id:          id,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DisplayName: "Name of " + id,
	}
	if err := repo.UpsertAccount(ctx, acct); err != nil {
		t.Fatalf("seeding account %s: %v", id, err)
	}
	if handle != "" {
		if _, err := repo.SetHandle(ctx, id, handle); err != nil {
			t.Fatalf("setting handle %s: %v", handle, err)
		}
		acct.Handle = handle
	}
	return acct
}

// SameIds matches a []string holding exactly ids, in any order.
func SameIds(ids ...string) gomock.Matcher {
	want := append([]string(nil), ids...)
	sort.Strings(want)
	return gomock.Cond(func(x any) bool {
		slice, ok := x.([]string)
		if !ok || len(slice) != len(want) {
			return false
		}
		got := append([]string(nil), slice...)
		sort.Strings(got)
		for i := range got {
			if got[i] != want[i] {
				return false
			}
		}
		return true
	})
}

// Slot is shorthand for a posting slot in tests.
func Slot(date string, period shared.Period) shared.Slot {
	return shared.Slot{Date: date, Period: period}
}

func At(date string, hour, minute int) time.Time {
	d, err := time.Parse(shared.SlotDateLayout, date)
	if err != nil {
		panic(fmt.Sprintf("bad test date %q", date))
	}
	return d.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}
