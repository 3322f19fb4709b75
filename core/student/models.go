package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/mahudhurio/core"
)

type Student struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Mobile         string  `json:"mobile"`
	ParentMobile   string  `json:"parent_mobile"`
	Address        string  `json:"address"`
	BatchID        string  `json:"batch_id,omitempty"` // empty: unassigned
	EnrollmentDate string  `json:"enrollment_date"`    // YYYY-MM-DD
	TotalFees      float64 `json:"total_fees"`
	FeesPaid       float64 `json:"fees_paid"`
	// FeesDue is computed by the store (total_fees - fees_paid); it is never
	// written by clients and never recomputed here.
	FeesDue   float64   `json:"fees_due"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// FeeTotals is the fee overlay summed over all students.
// Due comes from the store's generated column, not from Total - Paid.
type FeeTotals struct {
	Total float64 `json:"total_fees"`
	Paid  float64 `json:"total_fees_paid"`
	Due   float64 `json:"total_fees_due"`
}

// FilterByBatch returns the students assigned to batchID, preserving input
// order. An empty batchID matches nothing: there is no "all batches" view.
func FilterByBatch(students []Student, batchID string) []Student {
	if batchID == "" {
		return nil
	}
	filtered := make([]Student, 0, len(students))
	for _, s := range students {
		if s.BatchID == batchID {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"omitempty,email"`
	Mobile         string  `json:"mobile" validate:"omitempty,mobile"`
	ParentMobile   string  `json:"parent_mobile" validate:"omitempty,mobile"`
	Address        string  `json:"address"`
	BatchID        string  `json:"batch_id" validate:"omitempty,uuid4"`
	EnrollmentDate string  `json:"enrollment_date" validate:"omitempty,dateonly"`
	TotalFees      float64 `json:"total_fees" validate:"gte=0"`
	FeesPaid       float64 `json:"fees_paid" validate:"gte=0"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Mobile = core.CleanString(ns.Mobile)
	ns.ParentMobile = core.CleanString(ns.ParentMobile)
	ns.Address = core.CleanString(ns.Address)
	return validate.Struct(ns)
}

// UpdateStudent defines a full-field update of an existing Student.
// fees_due is deliberately absent: it is store-derived. Unlike NewStudent,
// enrollment_date is required here: there is no creation default to fall
// back on, and an empty date must never reach the store.
type UpdateStudent struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"omitempty,email"`
	Mobile         string  `json:"mobile" validate:"omitempty,mobile"`
	ParentMobile   string  `json:"parent_mobile" validate:"omitempty,mobile"`
	Address        string  `json:"address"`
	BatchID        string  `json:"batch_id" validate:"omitempty,uuid4"`
	EnrollmentDate string  `json:"enrollment_date" validate:"required,dateonly"`
	TotalFees      float64 `json:"total_fees" validate:"gte=0"`
	FeesPaid       float64 `json:"fees_paid" validate:"gte=0"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.Mobile = core.CleanString(us.Mobile)
	us.ParentMobile = core.CleanString(us.ParentMobile)
	us.Address = core.CleanString(us.Address)
	return validate.Struct(us)
}

type QueryFilter struct {
	Search  string `query:"search"`
	BatchID string `query:"batch"`
	// Assigned filters on batch membership: true for assigned students only,
	// false for unassigned ones.
	Assigned *bool `query:"is_assigned"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.BatchID == "" && qf.Assigned == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.BatchID = core.CleanString(qf.BatchID)
}
