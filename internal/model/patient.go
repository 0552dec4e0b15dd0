package model

// PatientActive is the patient status required for bed assignment.  The
// full patient lifecycle is owned elsewhere; this service only reads the
// fields it needs for validation and display composition.
const PatientActive = "Active"

// Patient is the read-only projection of a patient record used by the
// occupancy service.
type Patient struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Age        int    `json:"age"`
	BloodGroup string `json:"blood_group"`
	Status     string `json:"status"`
}

// DisplayName composes the name shown on bed cards and stored denormalized
// on an occupied bed.
func (p *Patient) DisplayName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Admittable reports whether the patient may be assigned to a bed.
func (p *Patient) Admittable() bool { return p.Status == PatientActive }
