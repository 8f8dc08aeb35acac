// Package analytics derives dashboard aggregates from the patient and
// appointment collections. Everything here is a pure read: callers recompute
// whenever the collections change, and the inputs are never mutated.
package analytics

import (
	"math"
	"sort"
	"time"

	"clinic-management-api/internal/model"
)

// PatientSpend annotates a patient with visit and spend totals.
type PatientSpend struct {
	model.Patient
	VisitCount int     `json:"visitCount"`
	TotalSpent float64 `json:"totalSpent"`
}

type Metrics struct {
	TotalPatients     int     `json:"totalPatients"`
	TotalAppointments int     `json:"totalAppointments"`
	Completed         int     `json:"completed"`
	Scheduled         int     `json:"scheduled"`
	Cancelled         int     `json:"cancelled"`
	CompletionRate    int     `json:"completionRate"` // percent, rounded
	TotalRevenue      float64 `json:"totalRevenue"`

	// RevenueByMonth holds Jan..Dec buckets for the calendar year of "now".
	RevenueByMonth [12]float64 `json:"revenueByMonth"`

	Today        []model.Appointment `json:"todayAppointments"`
	UpcomingWeek []model.Appointment `json:"upcomingThisWeek"`
	TopPatients  []PatientSpend      `json:"topPatients"`
}

// ParseDate reads the date formats the collections actually contain: RFC3339,
// a zoneless datetime, or a bare date. Zoneless values are read in now's
// location so "today" means the clinic's today.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// startOfWeek returns midnight Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	day := time.Monday
	offset := (int(t.Weekday()) - int(day) + 7) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Compute builds the full metrics object for the given instant.
func Compute(patients []model.Patient, appointments []model.Appointment, now time.Time) Metrics {
	loc := now.Location()
	m := Metrics{
		TotalPatients:     len(patients),
		TotalAppointments: len(appointments),
	}

	year := now.Year()
	weekStart := startOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	for _, a := range appointments {
		switch a.Status {
		case model.StatusCompleted:
			m.Completed++
		case model.StatusScheduled:
			m.Scheduled++
		case model.StatusCancelled:
			m.Cancelled++
		}
		m.TotalRevenue += a.Cost

		d, ok := ParseDate(a.AppointmentDate, loc)
		if !ok {
			continue
		}
		// all calendar logic runs in the clinic's location
		d = d.In(loc)
		if d.Year() == year {
			m.RevenueByMonth[int(d.Month())-1] += a.Cost
		}
		if sameDay(d, now) {
			m.Today = append(m.Today, a)
		}
		if d.After(now) && !d.Before(weekStart) && d.Before(weekEnd) {
			m.UpcomingWeek = append(m.UpcomingWeek, a)
		}
	}

	if m.TotalAppointments > 0 {
		m.CompletionRate = int(math.Round(float64(m.Completed) / float64(m.TotalAppointments) * 100))
	}

	byDate := func(list []model.Appointment) func(i, j int) bool {
		return func(i, j int) bool {
			return list[i].AppointmentDate < list[j].AppointmentDate
		}
	}
	sort.SliceStable(m.Today, byDate(m.Today))
	sort.SliceStable(m.UpcomingWeek, byDate(m.UpcomingWeek))
	if len(m.UpcomingWeek) > 5 {
		m.UpcomingWeek = m.UpcomingWeek[:5]
	}

	m.TopPatients = topPatients(patients, appointments)
	return m
}

func topPatients(patients []model.Patient, appointments []model.Appointment) []PatientSpend {
	out := make([]PatientSpend, 0, len(patients))
	for _, p := range patients {
		ps := PatientSpend{Patient: p}
		for _, a := range appointments {
			if a.PatientID != p.ID {
				continue
			}
			ps.VisitCount++
			ps.TotalSpent += a.Cost
		}
		out = append(out, ps)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSpent > out[j].TotalSpent
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}
