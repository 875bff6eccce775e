package reconcile

import (
	"fmt"
	"ripple/dto"
	"ripple/shared"
	"sort"
	"strings"
	"time"
)

// MatchWindow bounds how far a confirmed ripple's creation time may be from the
// local submission time for it to replace a provisional copy.
const MatchWindow = 10 * time.Second

const localIdPrefix = "local-"

// PendingRipple is a ripple shown before the server has confirmed it.
type PendingRipple struct {
	LocalId     string
	DropId      string
	Body        string
	Author      dto.AuthorView
	SubmittedAt time.Time
}

// Overlay layers unconfirmed local mutations over the last server snapshot.
// It is not safe for concurrent use; callers apply changes one event at a time.
type Overlay struct {
	seq       int
	snapshot  []dto.TimelineItem
	additions []PendingRipple
	removals  map[string]struct{}
	hearts    map[string]bool
}

func NewOverlay() *Overlay {
	return &Overlay{
		removals: make(map[string]struct{}),
		hearts:   make(map[string]bool),
	}
}

func IsLocalId(id string) bool {
	return strings.HasPrefix(id, localIdPrefix)
}

// AddRipple records a provisional ripple and returns its local id.
func (o *Overlay) AddRipple(dropId, body string, author dto.AuthorView, now time.Time) string {
	o.seq++
	pr := PendingRipple{
		LocalId:     fmt.Sprintf("%s%d", localIdPrefix, o.seq),
		DropId:      dropId,
		Body:        shared.NormalizeBody(body),
		Author:      author,
		SubmittedAt: now,
	}
	o.additions = append(o.additions, pr)
	return pr.LocalId
}

// DiscardRipple forgets a provisional ripple and returns it, for restoring the composer.
func (o *Overlay) DiscardRipple(localId string) (PendingRipple, bool) {
	for i, pr := range o.additions {
		if pr.LocalId == localId {
			o.additions = append(o.additions[:i], o.additions[i+1:]...)
			return pr, true
		}
	}
	return PendingRipple{}, false
}

// MarkRemoved hides a drop or ripple until the server confirms it is gone.
func (o *Overlay) MarkRemoved(id string) {
	o.removals[id] = struct{}{}
}

func (o *Overlay) RevertRemoval(id string) {
	delete(o.removals, id)
}

// SetHeart records the engaged state the viewer asked for.
func (o *Overlay) SetHeart(dropId string, hearted bool) {
	o.hearts[dropId] = hearted
}

// RevertHeart drops the override for a failed toggle. A newer toggle that
// asked for the other state is left alone.
func (o *Overlay) RevertHeart(dropId string, failed bool) {
	if want, ok := o.hearts[dropId]; ok && want == failed {
		delete(o.hearts, dropId)
	}
}

func (o *Overlay) PendingRipples() []PendingRipple {
	return append([]PendingRipple(nil), o.additions...)
}

func (o *Overlay) PendingRemovals() int {
	return len(o.removals)
}

func (o *Overlay) PendingHearts() int {
	return len(o.hearts)
}

// ApplySnapshot installs a fresh server snapshot and retires every pending
// entry that the snapshot has caught up with.
func (o *Overlay) ApplySnapshot(items []dto.TimelineItem) {
	o.snapshot = items

	drops := make(map[string]*dto.TimelineItem, len(items))
	present := make(map[string]struct{})
	for i := range items {
		drops[items[i].Id] = &items[i]
		present[items[i].Id] = struct{}{}
		for _, r := range items[i].Ripples {
			present[r.Id] = struct{}{}
		}
	}

	// Each confirmed ripple can retire at most one provisional copy.
	claimed := make(map[string]struct{})
	kept := o.additions[:0]
	for _, pr := range o.additions {
		parent, ok := drops[pr.DropId]
		if !ok {
			continue
		}
		if id, ok := matchConfirmed(parent.Ripples, pr, claimed); ok {
			claimed[id] = struct{}{}
			continue
		}
		kept = append(kept, pr)
	}
	o.additions = kept

	for id := range o.removals {
		if _, ok := present[id]; !ok {
			delete(o.removals, id)
		}
	}

	for dropId, want := range o.hearts {
		item, ok := drops[dropId]
		if !ok || item.Hearted == want {
			delete(o.hearts, dropId)
		}
	}
}

func matchConfirmed(ripples []dto.RippleView, pr PendingRipple, claimed map[string]struct{}) (string, bool) {
	for _, r := range ripples {
		if _, taken := claimed[r.Id]; taken {
			continue
		}
		if r.Body != pr.Body || r.Author.Id != pr.Author.Id {
			continue
		}
		delta := r.CreatedAt.Sub(pr.SubmittedAt)
		if delta < 0 {
			delta = -delta
		}
		if delta < MatchWindow {
			return r.Id, true
		}
	}
	return "", false
}

// Render merges the snapshot with pending changes. The snapshot itself is not modified.
func (o *Overlay) Render() []dto.TimelineItem {
	byDrop := make(map[string][]PendingRipple)
	for _, pr := range o.additions {
		byDrop[pr.DropId] = append(byDrop[pr.DropId], pr)
	}

	res := make([]dto.TimelineItem, 0, len(o.snapshot))
	for _, item := range o.snapshot {
		if _, removed := o.removals[item.Id]; removed {
			continue
		}
		ripples := make([]dto.RippleView, 0, len(item.Ripples)+len(byDrop[item.Id]))
		for _, r := range item.Ripples {
			if _, removed := o.removals[r.Id]; !removed {
				ripples = append(ripples, r)
			}
		}
		for _, pr := range byDrop[item.Id] {
			ripples = append(ripples, dto.RippleView{
				Id:        pr.LocalId,
				DropId:    pr.DropId,
				Author:    pr.Author,
				Body:      pr.Body,
				CreatedAt: pr.SubmittedAt,
			})
		}
		sort.SliceStable(ripples, func(i, j int) bool {
			return shared.NewerFirst(ripples[i].CreatedAt, ripples[i].Id, ripples[j].CreatedAt, ripples[j].Id)
		})
		item.Ripples = ripples

		if want, ok := o.hearts[item.Id]; ok && want != item.Hearted {
			item.Hearted = want
			if want {
				item.HeartCount++
			} else if item.HeartCount > 0 {
				item.HeartCount--
			}
		}
		res = append(res, item)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return shared.NewerFirst(res[i].CreatedAt, res[i].Id, res[j].CreatedAt, res[j].Id)
	})
	return res
}
