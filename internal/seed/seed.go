// Package seed bootstraps the record store with a fixed demo dataset so a
// fresh profile is never empty.
package seed

import (
	"time"

	"clinic-management-api/internal/model"
	"clinic-management-api/internal/store"
)

// DemoData returns the canonical first-run dataset: three users (one per
// role), one patient linked to the patient user, and two of that patient's
// appointments relative to now.
func DemoData(now time.Time) ([]model.User, []model.Patient, []model.Appointment) {
	users := []model.User{
		{ID: "1", Role: model.RoleAdmin, Email: "admin@entnt.in", Password: "admin123"},
		{ID: "2", Role: model.RolePatient, Email: "john@entnt.in", Password: "patient123", PatientID: "p1"},
		{ID: "3", Role: model.RoleDoctor, Email: "doctor@entnt.in", Password: "doctor123"},
	}
	patients := []model.Patient{
		{
			ID:         "p1",
			Name:       "John Doe",
			DOB:        "1990-05-10",
			Contact:    "1234567890",
			Email:      "john@entnt.in",
			HealthInfo: "No allergies",
		},
	}
	appointments := []model.Appointment{
		{
			ID:              "i1",
			PatientID:       "p1",
			Title:           "Toothache",
			Description:     "Upper molar pain",
			Comments:        "Sensitive to cold",
			AppointmentDate: now.Add(24 * time.Hour).Format(time.RFC3339),
			Cost:            80,
			Status:          model.StatusCompleted,
			Files:           []model.FileAttachment{},
		},
		{
			ID:              "i2",
			PatientID:       "p1",
			Title:           "Regular Check-up",
			Description:     "Bi-annual dental examination",
			AppointmentDate: now.Add(30 * 24 * time.Hour).Format(time.RFC3339),
			Status:          model.StatusScheduled,
			Files:           []model.FileAttachment{},
		},
	}
	return users, patients, appointments
}

// Ensure writes the demo dataset if any of the three collections is missing,
// unreadable, or empty, and reports whether it did. With force set, the
// collections are cleared first, so seeding always happens. Calling Ensure
// again after a successful seed is a no-op.
func Ensure(rs store.RecordStore, force bool) (bool, error) {
	if force {
		for _, key := range []string{store.KeyUsers, store.KeyPatients, store.KeyAppointments} {
			if err := rs.Remove(key); err != nil {
				return false, err
			}
		}
	}

	var (
		users        []model.User
		patients     []model.Patient
		appointments []model.Appointment
	)
	haveUsers := rs.Get(store.KeyUsers, &users) && len(users) > 0
	havePatients := rs.Get(store.KeyPatients, &patients) && len(patients) > 0
	haveAppointments := rs.Get(store.KeyAppointments, &appointments) && len(appointments) > 0

	if haveUsers && havePatients && haveAppointments {
		return false, nil
	}

	u, p, a := DemoData(time.Now())
	if err := rs.Set(store.KeyUsers, u); err != nil {
		return false, err
	}
	if err := rs.Set(store.KeyPatients, p); err != nil {
		return false, err
	}
	if err := rs.Set(store.KeyAppointments, a); err != nil {
		return false, err
	}
	return true, nil
}
