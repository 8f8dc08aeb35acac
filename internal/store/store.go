package store

// Fixed keys for the persisted collections. The layout mirrors the record
// store of the original single-profile app: three independent collections plus
// the current session under its own key.
const (
	KeyUsers        = "users"
	KeyPatients     = "patients"
	KeyAppointments = "appointments"
	KeyCurrentUser  = "currentUser"
)

// RecordStore is a thin key/value layer over JSON records. Get reports false
// on a missing key or unreadable value and never returns an error: corrupt
// data is indistinguishable from absent data by design of the record layout.
// Set overwrites whatever is under the key.
type RecordStore interface {
	Get(key string, v any) bool
	Set(key string, v any) error
	Remove(key string) error
}
