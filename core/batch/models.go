package batch

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/mahudhurio/core"
)

type Batch struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	Schedule    string    `json:"schedule"`
	Instructor  string    `json:"instructor"`
	CreatedDate string    `json:"created_date"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`   // UTC
	UpdatedAt   time.Time `json:"updated_at"`   // UTC
}

// WithCount carries the read-time derived student count. currentStudents is
// never persisted; the store counts assigned students on every read.
type WithCount struct {
	Batch
	CurrentStudents int `json:"current_students"`
}

func (b WithCount) CapacityStatus() CapacityStatus {
	return ClassifyCapacity(b.CurrentStudents, b.Capacity)
}

type CapacityStatus string

const (
	CapacityNormal   CapacityStatus = "normal"
	CapacityWarning  CapacityStatus = "warning"  // >= 75% full
	CapacityCritical CapacityStatus = "critical" // >= 90% full
)

// ClassifyCapacity buckets a batch's fill level. A capacity of zero (or less)
// counts as fully saturated.
func ClassifyCapacity(current, capacity int) CapacityStatus {
	if capacity <= 0 {
		return CapacityCritical
	}
	pct := float64(current) / float64(capacity) * 100
	switch {
	case pct >= 90:
		return CapacityCritical
	case pct >= 75:
		return CapacityWarning
	default:
		return CapacityNormal
	}
}

// NewBatch contains information needed to create a new Batch.
type NewBatch struct {
	Name        string `json:"name" validate:"required"`
	Capacity    int    `json:"capacity" validate:"required,gt=0"`
	Schedule    string `json:"schedule"`
	Instructor  string `json:"instructor"`
	CreatedDate string `json:"created_date" validate:"omitempty,dateonly"`
}

func (nb *NewBatch) Validate(validate *validator.Validate) error {
	nb.Name = core.CleanString(nb.Name)
	nb.Schedule = core.CleanString(nb.Schedule)
	nb.Instructor = core.CleanString(nb.Instructor)
	return validate.Struct(nb)
}

// UpdateBatch defines a full-field update of an existing Batch.
type UpdateBatch struct {
	Name       string `json:"name" validate:"required"`
	Capacity   int    `json:"capacity" validate:"required,gt=0"`
	Schedule   string `json:"schedule"`
	Instructor string `json:"instructor"`
}

func (ub *UpdateBatch) Validate(validate *validator.Validate) error {
	ub.Name = core.CleanString(ub.Name)
	ub.Schedule = core.CleanString(ub.Schedule)
	ub.Instructor = core.CleanString(ub.Instructor)
	return validate.Struct(ub)
}
