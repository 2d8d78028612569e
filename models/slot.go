package models

import "time"

// ProfessionalSlots lists the bookable UTC instants for one professional on
// one date. A professional that was considered but has no surviving slots is
// still returned with an empty Slots slice, so callers can tell "fully booked"
// apart from "does not exist".
type ProfessionalSlots struct {
	ProfessionalID   string      `json:"professionalId"`
	ProfessionalName string      `json:"professionalName"`
	Slots            []time.Time `json:"slots"`
}
