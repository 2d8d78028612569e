package models

// Service describes a bookable offering. Buffers are preparation/cleanup time
// around a booking that must not overlap any other booking for the same
// professional, although the buffer time itself is not bookable by a third
// party.
type Service struct {
	ID              string   `bson:"id" json:"id"`
	Owner           string   `bson:"owner" json:"owner"`
	Name            string   `bson:"name" json:"name"`
	DurationMin     int      `bson:"durationMin" json:"durationMin"` // >= 5
	BufferBeforeMin int      `bson:"bufferBeforeMin" json:"bufferBeforeMin"`
	BufferAfterMin  int      `bson:"bufferAfterMin" json:"bufferAfterMin"`
	RequiredSkills  []string `bson:"requiredSkills,omitempty" json:"requiredSkills,omitempty"`
}
