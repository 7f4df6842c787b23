package config

const (
	// Default rewards per task type (points)
	RewardVisit       = 3
	RewardJoinChannel = 8
	RewardJoinBot     = 5
	RewardOther       = 4

	// Referral bonus credited to the referrer (points)
	ReferralBonus = 10

	// Advertisement cost bounds (points); cost is the ad text length clamped to this range
	AdMinCost = 10
	AdMaxCost = 500

	// Leaderboard entries shown
	LeaderboardSize = 10

	// Rate limit (messages per chat per minute)
	RateLimitPerMinute = 20
)
