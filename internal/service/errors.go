package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrHasDependents means a row cannot be deleted while other rows still
// reference it.
var ErrHasDependents = errors.New("row is still referenced")

// ErrUnknownPermission means a permission code outside the catalog was
// submitted.
var ErrUnknownPermission = errors.New("unknown permission code")

// mapDeleteErr converts a foreign-key violation into ErrHasDependents so
// handlers can answer with a meaningful conflict instead of a 500.
func mapDeleteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrHasDependents
	}
	return err
}
