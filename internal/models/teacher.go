package models

// Teacher represents an instructor with the subjects and grades they cover
// plus a weekly availability map.
type Teacher struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SubjectIDs   []string        `json:"subject_ids"`
	GradeIDs     []string        `json:"grade_ids"`
	Availability AvailabilityMap `json:"-"`
}

// TeachesSubject reports whether the teacher covers the subject.
func (t Teacher) TeachesSubject(subjectID string) bool {
	for _, id := range t.SubjectIDs {
		if id == subjectID {
			return true
		}
	}
	return false
}

// CoversGrade reports whether the teacher is attached to the grade.
func (t Teacher) CoversGrade(gradeID string) bool {
	for _, id := range t.GradeIDs {
		if id == gradeID {
			return true
		}
	}
	return false
}
