package checkin

// Reward curve: a flat base plus a streak bonus that grows 5 coins per day
// and caps out once the streak reaches 8 days.
const (
	baseReward  = 10
	bonusPerDay = 5
	bonusCap    = 40
)

// Reward maps the streak day being earned (1-based, counting the day being
// checked in) to the coin reward: 15 on day 1, 20 on day 2, ... 50 from day
// 8 onward regardless of how long the streak grows.
func Reward(streakDay int) int {
	bonus := bonusPerDay * streakDay
	if bonus > bonusCap {
		bonus = bonusCap
	}
	return baseReward + bonus
}
