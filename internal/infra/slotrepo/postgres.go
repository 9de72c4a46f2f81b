package slotrepo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"slotbooker/internal/domain/slot"
	"slotbooker/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore realizes the slot store contract on a single slots table.
// The capacity primitives are guarded single-statement updates: the row lock
// taken by UPDATE serializes concurrent claims per slot, and the WHERE guard
// plus affected-row check makes check-and-mutate one atomic step.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const slotColumns = `
	id, slot_date,
	to_char(start_time, 'HH24:MI') AS start_time,
	to_char(end_time, 'HH24:MI') AS end_time,
	max_bookings, booked_count, service_types, note, created_at, updated_at
`

func (r *PostgresStore) Create(ctx context.Context, s *slot.Slot) error {
	const query = `
		INSERT INTO slots (id, slot_date, start_time, end_time, max_bookings, booked_count, service_types, note)
		VALUES ($1, $2, $3::time, $4::time, $5, 0, $6, $7)
	`

	var note *string
	if !s.Note().IsEmpty() {
		v := s.Note().String()
		note = &v
	}

	_, err := r.pool.Exec(ctx, query,
		s.ID(),
		s.Date().Time(),
		s.Window().Start().String(),
		s.Window().End().String(),
		s.MaxBookings(),
		s.ServiceTypes().Values(),
		note,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create slot", err)
	}

	return nil
}

func (r *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	entity, err := scanSlot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot by ID", err)
	}

	return entity, nil
}

func (r *PostgresStore) ListByDateRange(ctx context.Context, from, to slot.Date, serviceType string) ([]*slot.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE slot_date BETWEEN $1 AND $2
		  AND ($3 = '' OR service_types = '{}' OR $3 = ANY(service_types))
	`

	rows, err := r.pool.Query(ctx, query, from.Time(), to.Time(), serviceType)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots by date range", err)
	}
	defer rows.Close()

	var result []*slot.Slot
	for rows.Next() {
		entity, scanErr := scanSlot(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan slot row", scanErr)
		}
		result = append(result, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot rows", err)
	}

	return result, nil
}

func (r *PostgresStore) UpdateMetadata(ctx context.Context, id uuid.UUID, note slot.Note, serviceTypes slot.ServiceTypes) error {
	const query = `
		UPDATE slots
		SET note = $2, service_types = $3, updated_at = now()
		WHERE id = $1
	`

	var notePtr *string
	if !note.IsEmpty() {
		v := note.String()
		notePtr = &v
	}

	tag, err := r.pool.Exec(ctx, query, id, notePtr, serviceTypes.Values())
	if err != nil {
		return infra.WrapRepoErr("failed to update slot metadata", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}

	return nil
}

// Delete refuses to remove a slot that still holds bookings; the emptiness
// guard rides on the same statement as the delete.
func (r *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM slots WHERE id = $1 AND booked_count = 0`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete slot", err)
	}
	if tag.RowsAffected() == 0 {
		exists, existsErr := r.exists(ctx, id)
		if existsErr != nil {
			return existsErr
		}
		if exists {
			return infra.WrapRepoErr("slot has active bookings", nil, infra.KindConflict)
		}
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}

	return nil
}

// TryClaim is the load-bearing primitive: compare bookedCount to maxBookings
// and increment in one statement. Concurrent claims on the same row are
// serialized by the row lock; losers of the race on the last unit see zero
// affected rows.
func (r *PostgresStore) TryClaim(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE slots
		SET booked_count = booked_count + 1, updated_at = now()
		WHERE id = $1 AND booked_count < max_bookings
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to claim slot capacity", err)
	}
	if tag.RowsAffected() == 0 {
		exists, existsErr := r.exists(ctx, id)
		if existsErr != nil {
			return existsErr
		}
		if exists {
			return infra.WrapRepoErr("slot capacity exceeded", nil, infra.KindCapacityExceeded)
		}
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}

	return nil
}

// Release decrements the booked count, clamped at zero. A release with no
// matching claim indicates a caller bug; it is logged rather than propagated
// so a double release cannot corrupt the count further.
func (r *PostgresStore) Release(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE slots
		SET booked_count = booked_count - 1, updated_at = now()
		WHERE id = $1 AND booked_count > 0
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to release slot capacity", err)
	}
	if tag.RowsAffected() == 0 {
		exists, existsErr := r.exists(ctx, id)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
		}
		slog.Warn("release on slot with zero booked count", "slot_id", id)
	}

	return nil
}

func (r *PostgresStore) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM slots WHERE id = $1)`, id).Scan(&found)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check slot existence", err)
	}
	return found, nil
}

func scanSlot(row pgx.Row) (*slot.Slot, error) {
	var (
		id                   uuid.UUID
		slotDate             time.Time
		startTime, endTime   string
		maxBookings          int32
		bookedCount          int32
		serviceTypes         []string
		note                 *string
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &slotDate, &startTime, &endTime, &maxBookings, &bookedCount, &serviceTypes, &note, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	window, err := slot.ParseWindow(startTime, endTime)
	if err != nil {
		return nil, err
	}

	noteValue := ""
	if note != nil {
		noteValue = *note
	}

	return slot.ReconstructSlot(
		id,
		slot.NewDate(slotDate),
		window,
		maxBookings,
		bookedCount,
		slot.NewServiceTypes(serviceTypes),
		slot.NewNote(noteValue),
		createdAt,
		updatedAt,
	)
}
