package entities

import (
	"strings"
	"time"
)

type CafeStatus string

const (
	CafeStatusActive CafeStatus = "active"
	CafeStatusHidden CafeStatus = "hidden"
)

// Cafe is a published listing on the discovery map.
type Cafe struct {
	CafeID             string
	Name               string
	Description        string
	Address            string
	City               string
	Latitude           float64
	Longitude          float64
	Website            string
	PhotoURL           string
	Amenities          []string
	Status             CafeStatus
	SourceSubmissionID string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (c Cafe) ValidateCreate() bool {
	return strings.TrimSpace(c.Name) != "" &&
		strings.TrimSpace(c.Address) != "" &&
		strings.TrimSpace(c.City) != "" &&
		c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}
