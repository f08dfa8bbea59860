package booking

type Status string

const (
	StatusTemporary Status = "temporary"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusTemporary, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further status transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	default:
		return false
	}
}

type SeatType string

const (
	SeatRegular    SeatType = "REGULAR"
	SeatVIP        SeatType = "VIP"
	SeatAccessible SeatType = "ACCESSIBLE"
)

func (t SeatType) String() string {
	return string(t)
}

func (t SeatType) IsValid() bool {
	switch t {
	case SeatRegular, SeatVIP, SeatAccessible:
		return true
	default:
		return false
	}
}

func NewSeatType(s string) (SeatType, error) {
	t := SeatType(s)
	if !t.IsValid() {
		return "", ErrInvalidSeatType
	}
	return t, nil
}
