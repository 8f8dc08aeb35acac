package model

// PatientPatch is a partial update. Only non-nil fields override the existing
// record.
type PatientPatch struct {
	Name       *string `json:"name,omitempty"`
	DOB        *string `json:"dob,omitempty"`
	Contact    *string `json:"contact,omitempty"`
	Email      *string `json:"email,omitempty"`
	Gender     *string `json:"gender,omitempty"`
	Address    *string `json:"address,omitempty"`
	HealthInfo *string `json:"healthInfo,omitempty"`
}

func (p PatientPatch) Apply(dst *Patient) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.DOB != nil {
		dst.DOB = *p.DOB
	}
	if p.Contact != nil {
		dst.Contact = *p.Contact
	}
	if p.Email != nil {
		dst.Email = *p.Email
	}
	if p.Gender != nil {
		dst.Gender = *p.Gender
	}
	if p.Address != nil {
		dst.Address = *p.Address
	}
	if p.HealthInfo != nil {
		dst.HealthInfo = *p.HealthInfo
	}
}

// AppointmentPatch mirrors PatientPatch for appointments. The files list is
// managed through dedicated attach/remove operations, not through patches.
type AppointmentPatch struct {
	PatientID       *string            `json:"patientId,omitempty"`
	Title           *string            `json:"title,omitempty"`
	Description     *string            `json:"description,omitempty"`
	Comments        *string            `json:"comments,omitempty"`
	AppointmentDate *string            `json:"appointmentDate,omitempty"`
	Cost            *float64           `json:"cost,omitempty"`
	Status          *AppointmentStatus `json:"status,omitempty"`
	Treatment       *string            `json:"treatment,omitempty"`
	NextDate        *string            `json:"nextDate,omitempty"`
}

func (p AppointmentPatch) Apply(dst *Appointment) {
	if p.PatientID != nil {
		dst.PatientID = *p.PatientID
	}
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Comments != nil {
		dst.Comments = *p.Comments
	}
	if p.AppointmentDate != nil {
		dst.AppointmentDate = *p.AppointmentDate
	}
	if p.Cost != nil {
		dst.Cost = *p.Cost
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Treatment != nil {
		dst.Treatment = *p.Treatment
	}
	if p.NextDate != nil {
		dst.NextDate = *p.NextDate
	}
}
