package domain

import "time"

type User struct {
	TelegramID int64
	Username   string
	FirstName  string
	Points     int64
	Referrals  int64
	ReferredBy *int64
	CreatedAt  time.Time
}

// DisplayName returns the best handle for leaderboard and notification texts.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return ""
}

// Stats is the aggregate snapshot shown to admins.
type Stats struct {
	Users       int64
	TotalPoints int64
	Tasks       int64
}
