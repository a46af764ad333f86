package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for bookings. Mutations that touch more
// than one table run inside a single transaction.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)

	// ListApprovedForDevice returns the bookings occupying the device's
	// conflict space. Requested and denied bookings never block a device.
	ListApprovedForDevice(ctx context.Context, deviceID string) ([]*Booking, error)

	// ListForUser returns the user's bookings in the given state, each
	// joined with its device.
	ListForUser(ctx context.Context, userID string, status Status) ([]*Booking, error)

	// ListPending returns all bookings awaiting a decision, joined with the
	// requester's name and the device's name.
	ListPending(ctx context.Context) ([]*Booking, error)

	// Decide moves a requested booking out of the requested state. Approval
	// also records the requester into the device's historical users, in the
	// same transaction.
	Decide(ctx context.Context, id string, status Status) (*Booking, error)

	// DeleteOwned deletes the booking only when it belongs to userID and
	// returns the erased record. A booking owned by someone else is
	// indistinguishable from a missing one.
	DeleteOwned(ctx context.Context, id, userID string) (*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// joinedSelect selects booking rows together with their device columns.
func joinedSelect() squirrel.SelectBuilder {
	return psql.Select(
		"b.id", "b.user_id", "b.device_id",
		"d.name", "d.category", "d.model", "d.ram", "d.os",
		"b.date_from", "b.date_to", "b.status", "b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.devices d ON b.device_id = d.id")
}

func scanJoined(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.UserID, &b.DeviceID,
		&b.Device.Name, &b.Device.Category, &b.Device.Model, &b.Device.RAM, &b.Device.OS,
		&b.From, &b.To, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.Device.ID = b.DeviceID
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := psql.Insert("public.bookings").
		Columns("user_id", "device_id", "date_from", "date_to", "status").
		Values(b.UserID, b.DeviceID, b.From, b.To, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := joinedSelect().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanJoined(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) ListApprovedForDevice(ctx context.Context, deviceID string) ([]*Booking, error) {
	query, args, err := psql.Select("id", "user_id", "device_id", "date_from", "date_to", "status").
		From("public.bookings").
		Where(squirrel.Eq{"device_id": deviceID, "status": StatusApproved}).
		OrderBy("date_from ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build approved bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list approved bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.DeviceID, &b.From, &b.To, &b.Status); err != nil {
			return nil, fmt.Errorf("scan approved booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) ListForUser(ctx context.Context, userID string, status Status) ([]*Booking, error) {
	query, args, err := joinedSelect().
		Where(squirrel.Eq{"b.user_id": userID, "b.status": status}).
		OrderBy("b.date_from ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user bookings query failed: %w", err)
	}

	return r.queryJoined(ctx, query, args)
}

func (r *pgxRepository) ListPending(ctx context.Context) ([]*Booking, error) {
	query, args, err := psql.Select(
		"b.id", "b.user_id", "u.first_name || ' ' || u.last_name", "b.device_id",
		"d.name", "d.category", "d.model", "d.ram", "d.os",
		"b.date_from", "b.date_to", "b.status", "b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.devices d ON b.device_id = d.id").
		Join("public.users u ON b.user_id = u.id").
		Where(squirrel.Eq{"b.status": StatusRequested}).
		OrderBy("b.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build pending bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pending bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.UserName, &b.DeviceID,
			&b.Device.Name, &b.Device.Category, &b.Device.Model, &b.Device.RAM, &b.Device.OS,
			&b.From, &b.To, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pending booking failed: %w", err)
		}
		b.Device.ID = b.DeviceID
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) Decide(ctx context.Context, id string, status Status) (*Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin decide tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// A booking leaves the requested state exactly once.
	const updateQuery = `
		UPDATE public.bookings
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
		RETURNING user_id, device_id
	`

	var userID, deviceID string
	if err := tx.QueryRow(ctx, updateQuery, status, id, StatusRequested).Scan(&userID, &deviceID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return nil, ErrAlreadyDecided
			}
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update booking status failed: %w", err)
	}

	if status == StatusApproved {
		// Approval links the requester into the device's historical users.
		const historyQuery = `
			INSERT INTO public.device_users (device_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (device_id, user_id) DO NOTHING
		`
		if _, err := tx.Exec(ctx, historyQuery, deviceID, userID); err != nil {
			return nil, fmt.Errorf("record device user failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit decide tx failed: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *pgxRepository) DeleteOwned(ctx context.Context, id, userID string) (*Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin delete tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	query, args, err := joinedSelect().
		Where(squirrel.Eq{"b.id": id, "b.user_id": userID}).
		Suffix("FOR UPDATE OF b").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build owned booking query failed: %w", err)
	}

	b, err := scanJoined(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get owned booking failed: %w", err)
	}

	ct, err := tx.Exec(ctx, `DELETE FROM public.bookings WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit delete tx failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) queryJoined(ctx context.Context, query string, args []any) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.DeviceID,
			&b.Device.Name, &b.Device.Category, &b.Device.Model, &b.Device.RAM, &b.Device.OS,
			&b.From, &b.To, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		b.Device.ID = b.DeviceID
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}
