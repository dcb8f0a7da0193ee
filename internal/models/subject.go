package models

// SubjectCategory distinguishes regular instruction from reserve and
// school-affair time.
type SubjectCategory string

const (
	SubjectGeneral      SubjectCategory = "general"
	SubjectReserve      SubjectCategory = "reserve"
	SubjectSchoolAffair SubjectCategory = "school_affair"
)

// Subject represents an academic subject. Reference data, immutable per run.
type Subject struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	ShortName string          `json:"short_name"`
	Color     string          `json:"color"`
	Category  SubjectCategory `json:"category"`
}
