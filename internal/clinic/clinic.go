// Package clinic owns the patient and appointment collections. All state
// lives in memory and every mutation writes the touched collection(s) back to
// the record store before returning, so the store always reflects the latest
// state by the time any other component reads it.
package clinic

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinic-management-api/internal/model"
	"clinic-management-api/internal/store"
)

type Service struct {
	mu           sync.RWMutex
	rs           store.RecordStore
	log          *zap.Logger
	patients     []model.Patient
	appointments []model.Appointment
}

// New loads both collections from the store. Unreadable collections load as
// empty; the seed layer is responsible for refilling them.
func New(rs store.RecordStore, log *zap.Logger) *Service {
	s := &Service{rs: rs, log: log}
	rs.Get(store.KeyPatients, &s.patients)
	rs.Get(store.KeyAppointments, &s.appointments)
	return s
}

// Reload replaces the in-memory collections with whatever the store holds
// now. Used after a demo-data reset.
func (s *Service) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patients = nil
	s.appointments = nil
	s.rs.Get(store.KeyPatients, &s.patients)
	s.rs.Get(store.KeyAppointments, &s.appointments)
}

func (s *Service) persistPatients() {
	if err := s.rs.Set(store.KeyPatients, s.patients); err != nil {
		s.log.Error("persist patients", zap.Error(err))
	}
}

func (s *Service) persistAppointments() {
	if err := s.rs.Set(store.KeyAppointments, s.appointments); err != nil {
		s.log.Error("persist appointments", zap.Error(err))
	}
}

// Patients returns a copy of the patient collection in insertion order.
func (s *Service) Patients() []model.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Patient, len(s.patients))
	copy(out, s.patients)
	return out
}

// cloneAppointment copies the record including its Files slice, so snapshots
// handed out never alias the service's backing arrays.
func cloneAppointment(a model.Appointment) model.Appointment {
	if a.Files != nil {
		files := make([]model.FileAttachment, len(a.Files))
		copy(files, a.Files)
		a.Files = files
	}
	return a
}

// Appointments returns a copy of the appointment collection in insertion order.
func (s *Service) Appointments() []model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Appointment, len(s.appointments))
	for i := range s.appointments {
		out[i] = cloneAppointment(s.appointments[i])
	}
	return out
}

func (s *Service) PatientByID(id string) (model.Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.patients {
		if s.patients[i].ID == id {
			return s.patients[i], true
		}
	}
	return model.Patient{}, false
}

func (s *Service) AppointmentByID(id string) (model.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			return cloneAppointment(s.appointments[i]), true
		}
	}
	return model.Appointment{}, false
}

// AppointmentsFor returns every appointment referencing the patient, in
// insertion order. No implicit sort.
func (s *Service) AppointmentsFor(patientID string) []model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Appointment
	for i := range s.appointments {
		if s.appointments[i].PatientID == patientID {
			out = append(out, cloneAppointment(s.appointments[i]))
		}
	}
	return out
}

// AddPatient assigns a fresh id, appends, persists, and returns the record.
func (s *Service) AddPatient(p model.Patient) model.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.New().String()
	s.patients = append(s.patients, p)
	s.persistPatients()
	s.log.Info("patient added", zap.String("patient_id", p.ID))
	return p
}

// UpdatePatient merges the patch into the matching record. Unknown ids report
// false and change nothing.
func (s *Service) UpdatePatient(id string, patch model.PatientPatch) (model.Patient, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.patients {
		if s.patients[i].ID != id {
			continue
		}
		patch.Apply(&s.patients[i])
		s.persistPatients()
		return s.patients[i], true
	}
	return model.Patient{}, false
}

// DeletePatient removes the patient and every appointment referencing it,
// persisting both collections. Unknown ids report false.
func (s *Service) DeletePatient(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.patients {
		if s.patients[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	s.patients = append(s.patients[:idx], s.patients[idx+1:]...)

	kept := s.appointments[:0]
	removed := 0
	for _, a := range s.appointments {
		if a.PatientID == id {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	s.appointments = kept

	s.persistPatients()
	s.persistAppointments()
	s.log.Info("patient deleted", zap.String("patient_id", id), zap.Int("cascaded_appointments", removed))
	return true
}

func (s *Service) AddAppointment(a model.Appointment) model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.New().String()
	if a.Files == nil {
		a.Files = []model.FileAttachment{}
	}
	s.appointments = append(s.appointments, a)
	s.persistAppointments()
	s.log.Info("appointment added", zap.String("appointment_id", a.ID), zap.String("patient_id", a.PatientID))
	return cloneAppointment(a)
}

func (s *Service) UpdateAppointment(id string, patch model.AppointmentPatch) (model.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID != id {
			continue
		}
		patch.Apply(&s.appointments[i])
		s.persistAppointments()
		return cloneAppointment(s.appointments[i]), true
	}
	return model.Appointment{}, false
}

func (s *Service) DeleteAppointment(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID != id {
			continue
		}
		s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
		s.persistAppointments()
		s.log.Info("appointment deleted", zap.String("appointment_id", id))
		return true
	}
	return false
}

// AddFile appends an attachment to the appointment's files.
func (s *Service) AddFile(apptID string, file model.FileAttachment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID != apptID {
			continue
		}
		s.appointments[i].Files = append(s.appointments[i].Files, file)
		s.persistAppointments()
		return true
	}
	return false
}

// RemoveFile drops every attachment with the given name from the appointment.
func (s *Service) RemoveFile(apptID, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID != apptID {
			continue
		}
		kept := make([]model.FileAttachment, 0, len(s.appointments[i].Files))
		for _, f := range s.appointments[i].Files {
			if f.Name != name {
				kept = append(kept, f)
			}
		}
		s.appointments[i].Files = kept
		s.persistAppointments()
		return true
	}
	return false
}
