package models

import "time"

// TimeOff removes availability for one local calendar date. A record without a
// professional applies to the whole business; a record without a minute range
// blocks the entire day. Time off only ever subtracts, it never adds windows.
type TimeOff struct {
	ID             string    `bson:"id" json:"id"`
	Owner          string    `bson:"owner" json:"owner"`
	ProfessionalID string    `bson:"professionalId,omitempty" json:"professionalId,omitempty"`
	Date           string    `bson:"date" json:"date"` // local calendar date, "2006-01-02"
	StartMinute    *int      `bson:"startMinute,omitempty" json:"startMinute,omitempty"`
	EndMinute      *int      `bson:"endMinute,omitempty" json:"endMinute,omitempty"`
	Reason         string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// IsGlobal reports whether the record is a whole-business closure.
func (t *TimeOff) IsGlobal() bool {
	return t.ProfessionalID == ""
}

// IsWholeDay reports whether the record blocks the full day.
func (t *TimeOff) IsWholeDay() bool {
	return t.StartMinute == nil || t.EndMinute == nil
}
