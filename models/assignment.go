package models

// Assignment binds a professional to an availability template for a date range.
// Dates are local calendar dates ("2006-01-02"); EndDate empty means open-ended.
// A professional may hold several assignments covering the same date (e.g., a
// schedule change mid-range); every covering assignment contributes windows.
type Assignment struct {
	ID             string `bson:"id" json:"id"`
	Owner          string `bson:"owner" json:"owner"`
	ProfessionalID string `bson:"professionalId" json:"professionalId"`
	TemplateID     string `bson:"templateId" json:"templateId"`
	StartDate      string `bson:"startDate" json:"startDate"`
	EndDate        string `bson:"endDate,omitempty" json:"endDate,omitempty"`
}

// Covers reports whether the assignment's date range includes the given date.
func (a *Assignment) Covers(date string) bool {
	if date < a.StartDate {
		return false
	}
	return a.EndDate == "" || date <= a.EndDate
}
