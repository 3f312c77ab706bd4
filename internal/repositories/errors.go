package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "org-registry/pkg/errors"
)

// mapPostgresError переводит ошибки PostgreSQL в наши sentinel-ошибки.
// Исходная ошибка всегда остается в цепочке.
func mapPostgresError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation, pgerrcode.CardinalityViolation:
		// CardinalityViolation - один и тот же id филиала дважды в одном upsert
		return fmt.Errorf("%w: %s: %w", apperrors.ErrConflict, pgErr.Message, err)
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: %s: %w", apperrors.ErrConflict, pgErr.Detail, err)
	case pgerrcode.QueryCanceled:
		return fmt.Errorf("запрос отменен: %w", err)
	default:
		return fmt.Errorf("postgres error [%s]: %s: %w", pgErr.Code, pgErr.Message, err)
	}
}
