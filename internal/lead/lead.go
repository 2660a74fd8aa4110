package lead

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("lead not found")

// Status represents the qualification state of a lead.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusConverted Status = "converted"
	StatusDiscarded Status = "discarded"
)

// Lead represents a prospective tenant captured from a listing portal.
type Lead struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       string
	PropertyRef string
	Source      string // portal the lead came from, e.g. "idealista"
	Status      Status
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}
