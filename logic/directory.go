package logic

import (
	"context"
	"errors"
	"fmt"
	"ripple/dal"
	"ripple/dto"
	"ripple/shared"
	"strings"
)

const searchLimit = 20

//go:generate mockgen --build_flags=--mod=mod -destination ../test/mocks/mock_directory.go -package mocks ripple/logic IDirectory

// IDirectory is the read-mostly mirror of accounts owned by the identity provider.
type IDirectory interface {
	UpsertAccount(ctx context.Context, id, displayName, avatarUrl string) (*dal.Account, error)
	SetHandle(ctx context.Context, accountId, handle string) (*dal.Account, error)
	ProfileById(ctx context.Context, id string) (*dal.Account, error)
	ProfileByHandle(ctx context.Context, handle string) (*dal.Account, error)
	ProfilesByIds(ctx context.Context, ids []string) (map[string]*dal.Account, error)
	Search(ctx context.Context, query, viewerId string) ([]dto.ProfileEntry, error)
}

type directory struct {
	cfg    *shared.Config
	logger shared.ILogger
	repo   dal.IRepo
	idb    shared.IdBuilder
	clock  shared.IClock
	graph  ISocialGraph
}

func NewDirectory(
	cfg *shared.Config,
	logger shared.ILogger,
	repo dal.IRepo,
	clock shared.IClock,
	graph ISocialGraph,
) IDirectory {
	return &directory{
		cfg:    cfg,
		logger: logger,
		repo:   repo,
		idb:    shared.IdBuilder{Host: cfg.Host},
		clock:  clock,
		graph:  graph,
	}
}

func (dir *directory) UpsertAccount(ctx context.Context, id, displayName, avatarUrl string) (*dal.Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &shared.NotFoundError{Kind: "account", Id: id}
	}
	acct := &dal.Account{
		Id:          id,
		CreatedAt:   dir.clock.Now(),
		DisplayName: shared.CleanDisplayName(displayName),
		AvatarUrl:   strings.TrimSpace(avatarUrl),
	}
	if err := dir.repo.UpsertAccount(ctx, acct); err != nil {
		return nil, fmt.Errorf("failed to upsert account %s: %w", id, err)
	}
	return dir.ProfileById(ctx, id)
}

func (dir *directory) SetHandle(ctx context.Context, accountId, handle string) (*dal.Account, error) {
	handle, err := shared.NormalizeHandle(handle)
	if err != nil {
		return nil, err
	}
	found, err := dir.repo.SetHandle(ctx, accountId, handle)
	if errors.Is(err, dal.ErrDuplicateKey) {
		return nil, &shared.HandleTakenError{Handle: handle}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set handle of %s: %w", accountId, err)
	}
	if !found {
		return nil, &shared.NotFoundError{Kind: "account", Id: accountId}
	}
	dir.logger.Infof("Account %s is now @%s", accountId, handle)
	return dir.ProfileById(ctx, accountId)
}

func (dir *directory) ProfileById(ctx context.Context, id string) (*dal.Account, error) {
	acct, err := dir.repo.GetAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", id, err)
	}
	if acct == nil {
		return nil, &shared.NotFoundError{Kind: "account", Id: id}
	}
	return acct, nil
}

func (dir *directory) ProfileByHandle(ctx context.Context, handle string) (*dal.Account, error) {
	handle = strings.ToLower(strings.TrimSpace(handle))
	acct, err := dir.repo.GetAccountByHandle(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("failed to get account @%s: %w", handle, err)
	}
	if acct == nil {
		return nil, &shared.NotFoundError{Kind: "profile", Id: handle}
	}
	return acct, nil
}

// ProfilesByIds resolves all ids in a single query. Unknown ids are absent from the result.
func (dir *directory) ProfilesByIds(ctx context.Context, ids []string) (map[string]*dal.Account, error) {
	res, err := dir.repo.GetAccountsByIds(ctx, distinct(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	return res, nil
}

// Search matches handles by substring, excludes the viewer, and flags who the viewer follows.
func (dir *directory) Search(ctx context.Context, query, viewerId string) ([]dto.ProfileEntry, error) {
	res := make([]dto.ProfileEntry, 0)
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return res, nil
	}
	accts, err := dir.repo.SearchAccounts(ctx, query, viewerId, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search for %q: %w", query, err)
	}
	ids := make([]string, 0, len(accts))
	for _, acct := range accts {
		ids = append(ids, acct.Id)
	}
	following, err := dir.graph.FollowingAmong(ctx, viewerId, ids)
	if err != nil {
		return nil, err
	}
	for _, acct := range accts {
		res = append(res, dto.ProfileEntry{
			Author:      authorView(&dir.idb, acct.Id, acct),
			IsFollowing: following[acct.Id],
		})
	}
	return res, nil
}
