package domain

import "time"

// Completion records that a user has claimed a task's reward. At most one
// exists per (user, task) pair.
type Completion struct {
	UserID      int64
	TaskID      string
	Reward      int64
	Verified    bool
	CompletedAt time.Time
}
