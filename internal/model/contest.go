package model

import "time"

// Contest represents a timed competition that challenges belong to
type Contest struct {
	ID         string     `json:"id" bson:"_id"`
	Name       string     `json:"name" bson:"name"`
	TeamBased  bool       `json:"teamBased" bson:"teamBased"`
	StartTime  time.Time  `json:"startTime" bson:"startTime"`
	EndTime    time.Time  `json:"endTime" bson:"endTime"`
	FreezeTime *time.Time `json:"freezeTime,omitempty" bson:"freezeTime,omitempty"` // nil means no freeze
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
}

// Running reports whether the contest accepts submissions at the given time
func (c *Contest) Running(now time.Time) bool {
	return !now.Before(c.StartTime) && now.Before(c.EndTime)
}

// Frozen reports whether the scoreboard freeze is in effect at the given time
func (c *Contest) Frozen(now time.Time) bool {
	return c.FreezeTime != nil && !now.Before(*c.FreezeTime)
}
