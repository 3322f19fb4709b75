package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/student"
)

// Record is one per-student, per-day presence flag. The store enforces at most
// one Record per (student, date) pair; SaveSheet relies on it.
type Record struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Present   bool      `json:"present"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// Sheet is one batch-and-date's worth of attendance: the batch's students with
// their present/absent marks. A student missing from Marks is absent.
type Sheet struct {
	BatchID  string            `json:"batch_id"`
	Date     string            `json:"date"`
	Students []student.Student `json:"students"`
	Marks    map[string]bool   `json:"marks"` // student id -> present
}

// Summary counts the sheet's present and absent students.
// present + absent always equals len(Students).
func (sh Sheet) Summary() (present, absent int) {
	for _, std := range sh.Students {
		if sh.Marks[std.ID] {
			present++
		}
	}
	return present, len(sh.Students) - present
}

// SheetInput is a submitted attendance sheet for one batch and date.
type SheetInput struct {
	BatchID string          `json:"batch_id" validate:"required,uuid4"`
	Date    string          `json:"date" validate:"required,dateonly"`
	Marks   map[string]bool `json:"marks"` // student id -> present; missing = absent
}

func (si *SheetInput) Validate(validate *validator.Validate) error {
	si.BatchID = core.CleanString(si.BatchID)
	si.Date = core.CleanString(si.Date)
	return validate.Struct(si)
}
