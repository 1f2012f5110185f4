package entities

import (
	"strings"
	"time"
)

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
	SubmissionStatusFlagged  SubmissionStatus = "flagged"
)

// Submission is a user-proposed cafe listing awaiting moderation.
type Submission struct {
	SubmissionID   string
	SubmitterID    string
	Name           string
	Description    string
	Address        string
	City           string
	Latitude       float64
	Longitude      float64
	Website        string
	PhotoURL       string
	Status         SubmissionStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DecidedAt      *time.Time
	DecidedBy      string
	DecisionReason string
	Confidence     float64
}

func (s Submission) ValidateCreate() bool {
	return strings.TrimSpace(s.SubmitterID) != "" &&
		strings.TrimSpace(s.Name) != "" &&
		strings.TrimSpace(s.Address) != "" &&
		strings.TrimSpace(s.City) != "" &&
		s.ValidCoordinates()
}

func (s Submission) ValidCoordinates() bool {
	return s.Latitude >= -90 && s.Latitude <= 90 &&
		s.Longitude >= -180 && s.Longitude <= 180
}

// Resolved reports whether a moderation decision has been recorded. A
// resolved submission never re-enters the pending queue.
func (s Submission) Resolved() bool {
	return s.Status != SubmissionStatusPending
}
