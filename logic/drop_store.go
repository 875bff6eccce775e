package logic

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"ripple/dal"
	"ripple/shared"
	"sort"
)

type IDropStore interface {
	Create(ctx context.Context, authorId, body string, slot shared.Slot) (*dal.Drop, error)
	Edit(ctx context.Context, dropId, callerId, newBody string) (*dal.Drop, error)
	Delete(ctx context.Context, dropId, callerId string) error
	ListFor(ctx context.Context, accountIds []string) ([]*dal.Drop, error)
	UsedSlots(ctx context.Context, authorId, date string) ([]shared.Slot, error)
}

type dropStore struct {
	logger  shared.ILogger
	repo    dal.IRepo
	clock   shared.IClock
	metrics IMetrics
}

func NewDropStore(logger shared.ILogger, repo dal.IRepo, clock shared.IClock, metrics IMetrics) IDropStore {
	return &dropStore{
		logger:  logger,
		repo:    repo,
		clock:   clock,
		metrics: metrics,
	}
}

// Create files a drop under slot. A taken slot is reported by the store's unique
// constraint and surfaces as SlotConflictError; there is no pre-check.
func (ds *dropStore) Create(ctx context.Context, authorId, body string, slot shared.Slot) (*dal.Drop, error) {
	body, err := shared.ValidateBody("Drop", body)
	if err != nil {
		return nil, err
	}
	if err = shared.ValidateSlot(slot); err != nil {
		return nil, err
	}
	now := ds.clock.Now()
	drop := &dal.Drop{
		Id:        uuid.Must(uuid.NewV7()).String(),
		AuthorId:  authorId,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
		Slot:      slot,
	}
	err = ds.repo.AddDrop(ctx, drop)
	if errors.Is(err, dal.ErrDuplicateKey) {
		ds.metrics.SlotConflict(slot.Period)
		ds.logger.Infof("Slot %s already used by %s", slot, authorId)
		return nil, &shared.SlotConflictError{Slot: slot}
	}
	if errors.Is(err, dal.ErrMissingRef) {
		return nil, &shared.NotFoundError{Kind: "account", Id: authorId}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add drop for %s: %w", authorId, err)
	}
	ds.metrics.DropCreated()
	ds.logger.Infof("Drop %s by %s in %s: %s", drop.Id, authorId, slot, shared.TruncateWithEllipsis(body, 40))
	return drop, nil
}

// Edit only touches updated_at when the cleaned body differs from the stored one.
func (ds *dropStore) Edit(ctx context.Context, dropId, callerId, newBody string) (*dal.Drop, error) {
	body, err := shared.ValidateBody("Drop", newBody)
	if err != nil {
		return nil, err
	}
	drop, err := ds.getOwned(ctx, dropId, callerId, "edit this drop")
	if err != nil {
		return nil, err
	}
	if drop.Body == body {
		return drop, nil
	}
	changed, err := ds.repo.UpdateDropBody(ctx, dropId, callerId, body, ds.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to update drop %s: %w", dropId, err)
	}
	if !changed {
		ds.logger.Debugf("Drop %s changed or vanished during edit", dropId)
	}
	drop, err = ds.repo.GetDrop(ctx, dropId)
	if err != nil {
		return nil, fmt.Errorf("failed to reload drop %s: %w", dropId, err)
	}
	if drop == nil {
		return nil, &shared.NotFoundError{Kind: "drop", Id: dropId}
	}
	return drop, nil
}

func (ds *dropStore) getOwned(ctx context.Context, dropId, callerId, action string) (*dal.Drop, error) {
	drop, err := ds.repo.GetDrop(ctx, dropId)
	if err != nil {
		return nil, fmt.Errorf("failed to get drop %s: %w", dropId, err)
	}
	if drop == nil {
		return nil, &shared.NotFoundError{Kind: "drop", Id: dropId}
	}
	if drop.AuthorId != callerId {
		return nil, &shared.AuthorizationError{Action: action}
	}
	return drop, nil
}

// Delete removes the drop with its hearts and ripples atomically. The outcome is
// diagnosed after the fact so ownership is never checked ahead of the write.
func (ds *dropStore) Delete(ctx context.Context, dropId, callerId string) error {
	deleted, err := ds.repo.DeleteDropCascade(ctx, dropId, callerId)
	if err != nil {
		return fmt.Errorf("failed to delete drop %s: %w", dropId, err)
	}
	if deleted {
		ds.logger.Infof("Drop %s deleted by its author", dropId)
		return nil
	}
	_, err = ds.getOwned(ctx, dropId, callerId, "delete this drop")
	if err != nil {
		return err
	}
	// Owned but not deleted: it went away between the two statements.
	return &shared.NotFoundError{Kind: "drop", Id: dropId}
}

func (ds *dropStore) ListFor(ctx context.Context, accountIds []string) ([]*dal.Drop, error) {
	drops, err := ds.repo.GetDropsByAuthors(ctx, accountIds)
	if err != nil {
		return nil, fmt.Errorf("failed to list drops: %w", err)
	}
	sort.SliceStable(drops, func(i, j int) bool {
		return shared.NewerFirst(drops[i].CreatedAt, drops[i].Id, drops[j].CreatedAt, drops[j].Id)
	})
	return drops, nil
}

func (ds *dropStore) UsedSlots(ctx context.Context, authorId, date string) ([]shared.Slot, error) {
	slots, err := ds.repo.GetUsedSlots(ctx, authorId, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get used slots of %s: %w", authorId, err)
	}
	return slots, nil
}
