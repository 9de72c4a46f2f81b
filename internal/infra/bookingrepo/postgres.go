package bookingrepo

import (
	"context"
	"errors"
	"time"

	"slotbooker/internal/domain/booking"
	"slotbooker/internal/infra"
	"slotbooker/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (id, slot_id, service_type, customer_name, customer_email, customer_phone, customer_address, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	contact := b.Contact()
	_, err := r.pool.Exec(ctx, query,
		b.ID(),
		b.SlotID(),
		b.ServiceType().String(),
		contact.Name(),
		contact.Email(),
		nullable(contact.Phone()),
		nullable(contact.Address()),
		b.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}

	return nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = `
		SELECT id, slot_id, service_type, customer_name, customer_email,
		       customer_phone, customer_address, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var (
		bookingID, slotID    uuid.UUID
		serviceType          string
		name, email          string
		phone, address       *string
		status               string
		createdAt, updatedAt time.Time
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&bookingID, &slotID, &serviceType, &name, &email, &phone, &address, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return reconstruct(bookingID, slotID, serviceType, name, email, phone, address, status, createdAt, updatedAt)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	const query = `UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return nil
}

// Cancel is a guarded single-statement update mirroring the slot store's
// claim primitive: the already-cancelled check and the transition are one
// atomic step, so concurrent cancels of the same booking resolve to exactly
// one winner.
func (r *PostgresRepository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `
		UPDATE bookings SET status = $2, updated_at = now()
		WHERE id = $1 AND status <> $2
	`

	tag, err := r.pool.Exec(ctx, query, id, booking.StatusCancelled.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to cancel booking", err)
	}
	if tag.RowsAffected() == 0 {
		var status string
		err := r.pool.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1`, id).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return false, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
			}
			return false, infra.WrapRepoErr("failed to check booking status", err)
		}
		return false, nil
	}

	return true, nil
}

// PostgresReadStore serves booking views joined with their slot's window.
type PostgresReadStore struct {
	pool *pgxpool.Pool
}

func NewPostgresReadStore(pool *pgxpool.Pool) *PostgresReadStore {
	return &PostgresReadStore{pool: pool}
}

const bookingViewQuery = `
	SELECT b.id, b.slot_id,
	       to_char(s.slot_date, 'YYYY-MM-DD') AS slot_date,
	       to_char(s.start_time, 'HH24:MI') AS slot_start_time,
	       to_char(s.end_time, 'HH24:MI') AS slot_end_time,
	       b.service_type, b.customer_name, b.customer_email,
	       b.customer_phone, b.customer_address, b.status, b.created_at, b.updated_at
	FROM bookings b
	JOIN slots s ON s.id = b.slot_id
`

func (r *PostgresReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.pool.QueryRow(ctx, bookingViewQuery+` WHERE b.id = $1`, id)

	view, err := scanBookingView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view by ID", err)
	}

	return view, nil
}

func (r *PostgresReadStore) FindByCustomerEmail(ctx context.Context, email string) ([]*queries.BookingView, error) {
	rows, err := r.pool.Query(ctx, bookingViewQuery+` WHERE b.customer_email = $1 ORDER BY b.created_at DESC`, email)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by customer email", err)
	}
	defer rows.Close()

	var result []*queries.BookingView
	for rows.Next() {
		view, scanErr := scanBookingView(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan booking view row", scanErr)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking view rows", err)
	}

	return result, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var view queries.BookingView
	err := row.Scan(
		&view.ID, &view.SlotID, &view.SlotDate, &view.SlotStartTime, &view.SlotEndTime,
		&view.ServiceType, &view.CustomerName, &view.CustomerEmail,
		&view.CustomerPhone, &view.CustomerAddress, &view.Status, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func reconstruct(
	id, slotID uuid.UUID,
	serviceType, name, email string,
	phone, address *string,
	status string,
	createdAt, updatedAt time.Time,
) (*booking.Booking, error) {
	st, err := booking.NewServiceType(serviceType)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt service type on booking row", err)
	}

	contact, err := booking.NewCustomerContact(name, email, deref(phone), deref(address))
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt customer contact on booking row", err)
	}

	entity, err := booking.ReconstructBooking(id, slotID, st, contact, booking.Status(status), createdAt, updatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt status on booking row", err)
	}

	return entity, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
