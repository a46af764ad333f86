package device

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gevartrix/dshop-booking-backend/internal/pkg/apperror"
)

// ErrDuplicateName is produced by Create when the device name is taken.
// The reason names the colliding device, so it is built per call.
func ErrDuplicateName(name string) error {
	return apperror.New(http.StatusBadRequest, fmt.Sprintf("Device '%s' is already added.", name))
}

// Repository defines storage access for devices.
type Repository interface {
	Create(ctx context.Context, d *Device) error
	GetByID(ctx context.Context, id string) (*Device, error)
	GetByName(ctx context.Context, name string) (*Device, error)
	List(ctx context.Context, filter Filter) ([]*Device, error)
	// DeleteByName erases the device and returns the erased record.
	// Bookings referencing it are removed by the store in the same commit.
	DeleteByName(ctx context.Context, name string) (*Device, error)
	ListCategories(ctx context.Context) ([]string, error)
	SetPhotoPath(ctx context.Context, id, path string) error
}

type pgxDeviceRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxDeviceRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const deviceColumns = "id, name, category, model, ram, os, photo_path, created_at, updated_at"

func scanDevice(row pgx.Row) (*Device, error) {
	var d Device
	if err := row.Scan(
		&d.ID, &d.Name, &d.Category, &d.Model, &d.RAM, &d.OS,
		&d.PhotoPath, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *pgxDeviceRepository) Create(ctx context.Context, d *Device) error {
	const query = `
		INSERT INTO public.devices (name, category, model, ram, os)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		d.Name, d.Category, d.Model, d.RAM, d.OS,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateName(d.Name)
		}
		return fmt.Errorf("create device failed: %w", err)
	}
	return nil
}

func (r *pgxDeviceRepository) GetByID(ctx context.Context, id string) (*Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM public.devices WHERE id = $1`
	d, err := scanDevice(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get device failed: %w", err)
	}
	return d, nil
}

func (r *pgxDeviceRepository) GetByName(ctx context.Context, name string) (*Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM public.devices WHERE name = $1`
	d, err := scanDevice(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get device by name failed: %w", err)
	}
	return d, nil
}

func (r *pgxDeviceRepository) List(ctx context.Context, filter Filter) ([]*Device, error) {
	query := psql.Select(deviceColumns).
		From("public.devices").
		OrderBy("name ASC")

	// Empty-string filters are ignored, matching the query-parameter
	// passthrough of the REST surface.
	if filter.Name != "" {
		query = query.Where(squirrel.Eq{"name": filter.Name})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list devices query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list devices failed: %w", err)
	}
	defer rows.Close()

	var devices []*Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan device failed: %w", err)
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

func (r *pgxDeviceRepository) DeleteByName(ctx context.Context, name string) (*Device, error) {
	const query = `
		DELETE FROM public.devices
		WHERE name = $1
		RETURNING ` + deviceColumns

	d, err := scanDevice(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.New(http.StatusNotFound, fmt.Sprintf("Device '%s' not found", name))
		}
		return nil, fmt.Errorf("delete device failed: %w", err)
	}
	return d, nil
}

func (r *pgxDeviceRepository) ListCategories(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT category FROM public.devices ORDER BY category ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories failed: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category failed: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *pgxDeviceRepository) SetPhotoPath(ctx context.Context, id, path string) error {
	const query = `
		UPDATE public.devices
		SET photo_path = $1, updated_at = now()
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, path, id)
	if err != nil {
		return fmt.Errorf("set device photo failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
