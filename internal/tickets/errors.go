package tickets

import "errors"

var (
	// ErrLiveNotFound is returned when the referenced live does not exist.
	ErrLiveNotFound = errors.New("live not found")

	// ErrTicketNotFound is returned when the member holds no reservation
	// for the live.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrNoSeatsRequested is returned when a reservation would hold zero
	// seats: an invite with no companions.
	ErrNoSeatsRequested = errors.New("reservation must hold at least one seat")

	// ErrInvalidResType is returned for a reservation type other than
	// invite or general.
	ErrInvalidResType = errors.New("invalid reservation type")

	// ErrRepresentativeRequired is returned when neither the request nor
	// the member profile provides a representative name.
	ErrRepresentativeRequired = errors.New("representative name is required")

	// ErrTooManyCompanions is returned when the companion list exceeds the
	// live's companion cap.
	ErrTooManyCompanions = errors.New("too many companions for this live")

	// ErrOutsideWindow is returned when the live is not accepting
	// reservations at the moment of the write.
	ErrOutsideWindow = errors.New("live is not accepting reservations")

	// ErrCapacityExceeded is returned when the seat delta would push the
	// live's reserved total over its ticket stock.
	ErrCapacityExceeded = errors.New("not enough tickets remaining")

	// ErrConflict is returned when the transaction lost a serialization or
	// deadlock race. The request is safe to retry.
	ErrConflict = errors.New("reservation conflict, retry")
)
