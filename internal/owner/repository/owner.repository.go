package repository

import (
	"context"
	"database/sql"
	"errors"

	"ownerapi/internal/owner/apperr"
	"ownerapi/internal/owner/model"
	"ownerapi/pkg/logger"

	"github.com/lib/pq"
)

// Postgres class for unique constraint violations.
const uniqueViolation = "23505"

type OwnerRepository struct {
	DB *sql.DB
}

func NewOwnerRepository(db *sql.DB) *OwnerRepository {
	return &OwnerRepository{DB: db}
}

func (r *OwnerRepository) GetByID(ctx context.Context, id int64) (*model.Owner, error) {
	o := &model.Owner{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, owner, password, creation_time, heading, description FROM app_owners WHERE id = $1`, id).
		Scan(&o.ID, &o.Owner, &o.Password, &o.CreationTime, &o.Heading, &o.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		logger.Sugar.Errorf("Failed to get owner %d: %v", id, err)
		return nil, err
	}
	return o, nil
}

// Insert stores a new row and fills in the store-assigned id and
// creation time. Duplicate login names surface as ConflictError; the
// store rejects the row before anything is written.
func (r *OwnerRepository) Insert(ctx context.Context, o *model.Owner) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO app_owners (owner, password, heading, description) VALUES ($1, $2, $3, $4) RETURNING id, creation_time`,
		o.Owner, o.Password, o.Heading, o.Description).
		Scan(&o.ID, &o.CreationTime)
	if err != nil {
		if isUniqueViolation(err) {
			return &apperr.ConflictError{Name: o.Owner}
		}
		logger.Sugar.Errorf("Failed to insert owner %s: %v", o.Owner, err)
		return err
	}
	return nil
}

func (r *OwnerRepository) Update(ctx context.Context, o *model.Owner) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE app_owners SET owner = $1, password = $2, heading = $3, description = $4 WHERE id = $5`,
		o.Owner, o.Password, o.Heading, o.Description, o.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return &apperr.ConflictError{Name: o.Owner}
		}
		logger.Sugar.Errorf("Failed to update owner %d: %v", o.ID, err)
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *OwnerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM app_owners WHERE id = $1`, id)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete owner %d: %v", id, err)
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
