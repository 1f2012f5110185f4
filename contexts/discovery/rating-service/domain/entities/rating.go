package entities

import (
	"strings"
	"time"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Rating is one user's score for one cafe. A user holds at most one
// rating per cafe; re-rating replaces the previous score.
type Rating struct {
	RatingID  string
	CafeID    string
	UserID    string
	Score     int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Rating) Validate() []string {
	var problems []string
	if strings.TrimSpace(r.CafeID) == "" {
		problems = append(problems, "cafe_id is required")
	}
	if strings.TrimSpace(r.UserID) == "" {
		problems = append(problems, "user_id is required")
	}
	if r.Score < MinScore || r.Score > MaxScore {
		problems = append(problems, "score must be between 1 and 5")
	}
	if len(r.Comment) > 1000 {
		problems = append(problems, "comment must be at most 1000 characters")
	}
	return problems
}
