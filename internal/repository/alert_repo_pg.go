package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tulsagolf/teetimes/internal/domain"
)

var ErrAlertNotFound = errors.New("alert not found")

type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
	List(ctx context.Context) ([]domain.Alert, error)
	ListByPhone(ctx context.Context, phone string) ([]domain.Alert, error)
	ListActive(ctx context.Context) ([]domain.Alert, error)
	HasActive(ctx context.Context, phone, courseKey, date string) (bool, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type PGAlertRepository struct {
	db *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) AlertRepository {
	return &PGAlertRepository{db: db}
}

const alertColumns = `id, phone, course_key, date, start_time, end_time, min_spots, active, created_at`

func (r *PGAlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	return r.db.QueryRow(ctx, `INSERT INTO alerts (id, phone, course_key, date, start_time, end_time, min_spots, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		RETURNING created_at`,
		alert.ID, alert.Phone, alert.CourseKey, alert.Date, alert.StartTime, alert.EndTime, alert.MinSpots).
		Scan(&alert.CreatedAt)
}

func (r *PGAlertRepository) List(ctx context.Context) ([]domain.Alert, error) {
	return r.list(ctx, `SELECT `+alertColumns+` FROM alerts ORDER BY created_at`)
}

func (r *PGAlertRepository) ListByPhone(ctx context.Context, phone string) ([]domain.Alert, error) {
	return r.list(ctx, `SELECT `+alertColumns+` FROM alerts WHERE phone=$1 ORDER BY created_at`, phone)
}

func (r *PGAlertRepository) ListActive(ctx context.Context) ([]domain.Alert, error) {
	return r.list(ctx, `SELECT `+alertColumns+` FROM alerts WHERE active ORDER BY created_at`)
}

func (r *PGAlertRepository) list(ctx context.Context, query string, args ...any) ([]domain.Alert, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		var a domain.Alert
		if err := rows.Scan(&a.ID, &a.Phone, &a.CourseKey, &a.Date, &a.StartTime, &a.EndTime, &a.MinSpots, &a.Active, &a.CreatedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (r *PGAlertRepository) HasActive(ctx context.Context, phone, courseKey, date string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM alerts WHERE phone=$1 AND course_key=$2 AND date=$3 AND active)`,
		phone, courseKey, date).Scan(&exists)
	return exists, err
}

func (r *PGAlertRepository) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE alerts SET active=false WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAlertNotFound
	}
	return nil
}

func (r *PGAlertRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM alerts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAlertNotFound
	}
	return nil
}

var _ AlertRepository = (*PGAlertRepository)(nil)
