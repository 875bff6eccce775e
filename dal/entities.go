package dal

import (
	"ripple/shared"
	"time"
)

// Account mirrors the identity subsystem's profile record.
type Account struct {
	Id          string
	CreatedAt   time.Time
	Handle      string // empty until onboarding sets it
	DisplayName string
	AvatarUrl   string
}

type Follow struct {
	FollowerId string
	FolloweeId string
	CreatedAt  time.Time
}

// Drop is a content item; at most one per (AuthorId, Slot).
type Drop struct {
	Id        string
	AuthorId  string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Slot      shared.Slot
}

type Heart struct {
	DropId    string
	AccountId string
	CreatedAt time.Time
}

// Ripple is a reply attached to a drop.
type Ripple struct {
	Id        string
	DropId    string
	AuthorId  string
	Body      string
	CreatedAt time.Time
}
