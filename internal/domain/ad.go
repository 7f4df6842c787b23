package domain

import (
	"fmt"
	"time"
)

// AdState tracks where a user's ad draft is in the propose → confirm flow.
// The draft is persisted, so a process restart resumes the flow where it was.
type AdState string

const (
	AdAwaitingText    AdState = "awaiting_text"
	AdAwaitingConfirm AdState = "awaiting_confirm"
)

// PendingAd is a per-user ad draft. At most one exists per user; starting the
// flow again overwrites it.
type PendingAd struct {
	UserID    int64
	State     AdState
	Text      string
	Cost      int64
	CreatedAt time.Time
}

// PublishedAd is a paid, stored advertisement. Append-only.
type PublishedAd struct {
	ID          string
	OwnerID     int64
	Text        string
	Cost        int64
	PublishedAt time.Time
}

// PublishedAdID derives the ad log key from publication time and owner.
func PublishedAdID(publishedAt time.Time, ownerID int64) string {
	return fmt.Sprintf("ad_%d_%d", publishedAt.Unix(), ownerID)
}
