package booking

type Status string

const (
	// StatusRequested is the initial state right after capacity is claimed,
	// pending staff acknowledgement.
	StatusRequested Status = "requested"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// HoldsCapacity reports whether a booking in this status counts against its
// slot's bookedCount. Only a transition into cancelled releases capacity.
func (s Status) HoldsCapacity() bool {
	return s == StatusRequested || s == StatusConfirmed
}
