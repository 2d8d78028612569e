package models

// Professional is a bookable member of a tenant's staff.
type Professional struct {
	ID       string   `bson:"id" json:"id"`
	Owner    string   `bson:"owner" json:"owner"`
	Name     string   `bson:"name" json:"name"`
	Active   bool     `bson:"active" json:"active"`
	Capacity int      `bson:"capacity" json:"capacity"` // concurrent bookings held in the same instant, >= 1
	Skills   []string `bson:"skills,omitempty" json:"skills,omitempty"`
}

// EffectiveCapacity returns the capacity, defaulting to 1 for legacy documents
// that predate the field.
func (p *Professional) EffectiveCapacity() int {
	if p.Capacity < 1 {
		return 1
	}
	return p.Capacity
}

// HasSkills reports whether the professional covers every required skill.
func (p *Professional) HasSkills(required []string) bool {
	for _, req := range required {
		found := false
		for _, s := range p.Skills {
			if s == req {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
