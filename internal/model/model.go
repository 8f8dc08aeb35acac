package model

type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleDoctor  Role = "Doctor"
	RolePatient Role = "Patient"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// User is a login record. Passwords may be plaintext (demo seed data) or a
// bcrypt hash; see auth.CheckPassword.
type User struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	PatientID string `json:"patientId,omitempty"`
}

type Patient struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DOB        string `json:"dob"` // YYYY-MM-DD
	Contact    string `json:"contact"`
	Email      string `json:"email,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Address    string `json:"address,omitempty"`
	HealthInfo string `json:"healthInfo,omitempty"`
}

// FileAttachment is a name plus an object URL. URLs point at in-memory blobs
// and are never durable.
type FileAttachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Appointment struct {
	ID              string            `json:"id"`
	PatientID       string            `json:"patientId"`
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	Comments        string            `json:"comments,omitempty"`
	AppointmentDate string            `json:"appointmentDate"` // ISO datetime
	Cost            float64           `json:"cost,omitempty"`
	Status          AppointmentStatus `json:"status"`
	Treatment       string            `json:"treatment,omitempty"`
	NextDate        string            `json:"nextDate,omitempty"`
	Files           []FileAttachment  `json:"files"`
}

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
