package commands

import (
	"context"
	"time"

	"cinebook/internal/domain/booking"
	"cinebook/internal/domain/payment"
	"cinebook/internal/domain/user"
	"cinebook/internal/infra"
	"cinebook/internal/pkg/clock"
	"cinebook/internal/pkg/errs"
	"cinebook/internal/pkg/password"
	"cinebook/internal/usecase/queries"
	"cinebook/internal/usecase/shared"

	"github.com/google/uuid"
)

// Guests never authenticate with this credential; it only satisfies the
// not-null constraint so duplicate guest checkouts can share one account.
const guestPlaceholderCredential = "guest-checkout-placeholder"

const maxTicketAttempts = 3

type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	return a.ID == ownerID || a.Role == user.RoleAdmin
}

type CreateBookingInput struct {
	ShowtimeID  uuid.UUID
	Seats       []booking.SeatSelection
	TotalAmount booking.Money

	// Exactly one of UserID / Guest is set; the handler enforces this.
	UserID *uuid.UUID
	Guest  *user.GuestContact
}

type CreateBookingResult struct {
	BookingID uuid.UUID
	ExpiresAt time.Time
	Status    booking.Status
}

type CompleteBookingInput struct {
	BookingID  uuid.UUID
	CardNumber string
	Expiry     string
	CVV        string
}

type CompleteBookingResult struct {
	Booking *queries.BookingView
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error)
	CompleteBooking(ctx context.Context, in CompleteBookingInput) (*CompleteBookingResult, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, actor Actor) error
}

// BookingViewSource is the read-after-write view used to build responses
// once a command transaction has committed.
type BookingViewSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow             shared.UnitOfWork
	views           BookingViewSource
	authorizer      payment.Authorizer
	clock           clock.Clock
	holdDuration    time.Duration
	placeholderHash string
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	views BookingViewSource,
	authorizer payment.Authorizer,
	clk clock.Clock,
	holdDuration time.Duration,
) (BookingCommands, error) {
	placeholderHash, err := password.HashPassword(guestPlaceholderCredential)
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash guest placeholder credential")
	}

	return &bookingCommandsImpl{
		uow:             uow,
		views:           views,
		authorizer:      authorizer,
		clock:           clk,
		holdDuration:    holdDuration,
		placeholderHash: placeholderHash,
	}, nil
}

// CreateBooking places a time-bounded hold on the requested seats. The
// identity resolution, showtime load, conflict check, booking insert and
// ledger claims are one atomic unit: any failure rolls everything back,
// and a partial reservation of the non-conflicting subset never happens.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error) {
	if len(in.Seats) == 0 {
		return nil, errs.Mark(booking.ErrNoSeatsSelected, errs.ErrDomainValidation)
	}

	var result *CreateBookingResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		userID, err := c.resolveIdentity(ctx, tx, in)
		if err != nil {
			return err
		}

		if _, err := tx.Reads().ShowtimeByID(ctx, in.ShowtimeID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrShowtimeNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		now := c.clock.Now()
		seatIDs := booking.SeatIDs(in.Seats)

		conflicts, err := tx.Claims().FindActiveConflicts(ctx, in.ShowtimeID, seatIDs, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if len(conflicts) > 0 {
			return errs.ErrSeatConflict
		}

		hold, err := booking.NewHold(userID, in.ShowtimeID, in.Seats, in.TotalAmount, now, c.holdDuration)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if err := tx.Bookings().Create(ctx, hold); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := tx.Claims().Reserve(ctx, in.ShowtimeID, seatIDs, hold.ID(), now); err != nil {
			// A competing hold won the unique claim slot between our
			// conflict check and the insert; first commit wins.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.ErrSeatConflict
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = &CreateBookingResult{
			BookingID: hold.ID(),
			ExpiresAt: *hold.ExpiresAt(),
			Status:    hold.Status(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *bookingCommandsImpl) resolveIdentity(ctx context.Context, tx shared.Tx, in CreateBookingInput) (uuid.UUID, error) {
	if in.UserID != nil {
		return *in.UserID, nil
	}
	if in.Guest == nil {
		return uuid.Nil, errs.ErrDomainValidation
	}

	snap, err := tx.Users().FindByEmail(ctx, in.Guest.Email().Value())
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		guest := user.NewGuest(*in.Guest, c.placeholderHash)
		if err := tx.Users().Create(ctx, guest); err != nil {
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return guest.ID(), nil
	}

	// Returning guest: refresh the stored phone when it changed.
	if phone := in.Guest.Phone(); phone != "" && phone != snap.Phone {
		if err := tx.Users().UpdatePhone(ctx, snap.ID, phone); err != nil {
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}

	return snap.ID, nil
}

type completeOutcome int

const (
	outcomeCompleted completeOutcome = iota
	outcomeExpired
	outcomeDeclined
)

// CompleteBooking atomically converts a valid, unexpired hold into a
// confirmed sale. An expired hold is lazily cancelled before any payment
// logic runs; a declined instrument commits only the payment_status flip
// and leaves the hold retryable.
func (c *bookingCommandsImpl) CompleteBooking(ctx context.Context, in CompleteBookingInput) (*CompleteBookingResult, error) {
	var (
		outcome    completeOutcome
		declineErr error
	)

	// Ticket numbers carry a low-entropy random suffix; a unique-key
	// violation on commit retries the whole unit with a fresh number.
	var err error
	for attempt := 0; attempt < maxTicketAttempts; attempt++ {
		err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			b, ferr := tx.Bookings().FindForUpdate(ctx, in.BookingID)
			if ferr != nil {
				if infra.IsKind(ferr, infra.KindNotFound) {
					return errs.ErrBookingNotFound
				}
				return errs.Mark(ferr, errs.ErrDatabaseOperationFailed)
			}

			now := c.clock.Now()

			if b.IsExpired(now) {
				if cerr := b.Cancel(); cerr != nil {
					return errs.Mark(cerr, errs.ErrInvalidBookingStatus)
				}
				if serr := tx.Bookings().Save(ctx, b); serr != nil {
					return errs.Mark(serr, errs.ErrDatabaseOperationFailed)
				}
				if rerr := tx.Claims().ReleaseAllForBooking(ctx, b.ID()); rerr != nil {
					return errs.Mark(rerr, errs.ErrDatabaseOperationFailed)
				}
				outcome = outcomeExpired
				return nil
			}

			if !b.IsTemporary() {
				return errs.ErrInvalidBookingStatus
			}

			card, cardErr := payment.NewCardDetails(in.CardNumber, in.Expiry, in.CVV)
			if cardErr != nil {
				if merr := b.MarkPaymentFailed(); merr != nil {
					return errs.Mark(merr, errs.ErrInvalidBookingStatus)
				}
				if serr := tx.Bookings().Save(ctx, b); serr != nil {
					return errs.Mark(serr, errs.ErrDatabaseOperationFailed)
				}
				outcome = outcomeDeclined
				declineErr = errs.Mark(cardErr, errs.ErrInvalidCardDetail)
				return nil
			}

			// The authorizer runs in-process and never blocks on I/O. A
		// remote gateway must not be called here: the booking row is
		// locked FOR UPDATE, so a slow gateway would hold the lock. A
		// real integration authorizes before the transaction and only
		// captures inside it.
		txnID, aerr := c.authorizer.Authorize(ctx, card, b.TotalAmount())
			if aerr != nil {
				if merr := b.MarkPaymentFailed(); merr != nil {
					return errs.Mark(merr, errs.ErrInvalidBookingStatus)
				}
				if serr := tx.Bookings().Save(ctx, b); serr != nil {
					return errs.Mark(serr, errs.ErrDatabaseOperationFailed)
				}
				outcome = outcomeDeclined
				declineErr = aerr
				return nil
			}

			ticket, terr := booking.GenerateTicketNumber(now)
			if terr != nil {
				return errs.Mark(terr, errs.ErrDatabaseOperationFailed)
			}
			if cerr := b.Complete(ticket, now); cerr != nil {
				return errs.Mark(cerr, errs.ErrInvalidBookingStatus)
			}
			if serr := tx.Bookings().Save(ctx, b); serr != nil {
				return errs.Mark(serr, errs.ErrDatabaseOperationFailed)
			}

			pay := payment.NewCompleted(b.ID(), b.TotalAmount(), card, txnID)
			if perr := tx.Payments().Create(ctx, pay); perr != nil {
				return errs.Mark(perr, errs.ErrDatabaseOperationFailed)
			}

			outcome = outcomeCompleted
			return nil
		})

		if err != nil && infra.IsKind(err, infra.KindDuplicateKey) {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	switch outcome {
	case outcomeExpired:
		return nil, errs.ErrBookingExpired
	case outcomeDeclined:
		return nil, errs.Mark(declineErr, errs.ErrPaymentFailed)
	}

	// Read-after-write: return the complete view including the payment
	view, err := c.views.FindByID(ctx, in.BookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &CompleteBookingResult{Booking: view}, nil
}

// CancelBooking handles explicit cancellation by the owner or an admin.
// Only temporary holds are cancellable; completed and cancelled bookings
// keep their payment and seat state untouched.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID, actor Actor) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindForUpdate(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if !actor.CanAccess(b.UserID()) {
			return errs.ErrNotBookingOwner
		}

		if err := b.Cancel(); err != nil {
			return errs.ErrInvalidBookingStatus
		}

		if err := tx.Bookings().Save(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := tx.Claims().ReleaseAllForBooking(ctx, b.ID()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		return nil
	})
}
