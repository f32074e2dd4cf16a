package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"garage/internal/domain"
	"garage/internal/infra"
	"garage/internal/sqlinline"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isMissing treats a malformed uuid like an unknown id.
func isMissing(err error) bool {
	return infra.IsNoRows(err) || pgCode(err) == invalidTextRepresentation
}

// EntityRepositoryPG implements domain.EntityRepository.
type EntityRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewEntityRepository(sql infra.SQLExecutor) *EntityRepositoryPG {
	return &EntityRepositoryPG{sql: sql}
}

func (r *EntityRepositoryPG) Create(ctx context.Context, e *domain.BusinessEntity) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertEntity, e.ID, e.Name, e.ShortCode)
	if pgCode(err) == uniqueViolation {
		return fmt.Errorf("short code %q is already in use: %w", e.ShortCode, domain.ErrInvalidArgument)
	}
	return err
}

func (r *EntityRepositoryPG) GetByID(ctx context.Context, entityID string) (*domain.BusinessEntity, error) {
	var e domain.BusinessEntity
	if err := r.sql.QueryRow(ctx, sqlinline.QSelectEntity, entityID).Scan(&e.ID, &e.Name, &e.ShortCode); err != nil {
		if isMissing(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}
