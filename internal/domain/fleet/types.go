package fleet

// AdminStatus is the operator-set state of a car, independent of the
// booking schedule. It is owned by the master-data CRUD surface; the
// reservation core only ever reads it.
type AdminStatus string

const (
	StatusAvailable   AdminStatus = "available"
	StatusMaintenance AdminStatus = "maintenance"
	StatusRetired     AdminStatus = "retired"
)

func (s AdminStatus) String() string {
	return string(s)
}

func (s AdminStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusRetired:
		return true
	default:
		return false
	}
}

// Bookable reports whether booking commands may target a car in this
// state. Maintenance and retired cars reject all bookings.
func (s AdminStatus) Bookable() bool {
	return s == StatusAvailable
}
