package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrConflict reports a unique or foreign-key constraint violation.
	ErrConflict = errors.New("constraint violation")
	// ErrNoID reports an insert that produced no identifier.
	ErrNoID = errors.New("no insert ID returned")
	// ErrNotFound reports a lookup that matched no row.
	ErrNotFound = errors.New("not found")
	// ErrInvalid reports input rejected before reaching the database.
	ErrInvalid = errors.New("invalid input")
)

// isConstraint reports whether err is a constraint violation from either driver.
func isConstraint(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		// class 23: integrity constraint violation
		return len(pe.Code) == 5 && pe.Code[:2] == "23"
	}
	return false
}

// fail wraps err with the operation name, tags constraint violations with
// ErrConflict and logs it.
func (s *Store) fail(op string, err error, fields ...zap.Field) error {
	switch {
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInvalid), errors.Is(err, ErrNotFound):
		err = fmt.Errorf("%s: %w", op, err)
	case isConstraint(err):
		err = fmt.Errorf("%s: %w: %w", op, ErrConflict, err)
	default:
		err = fmt.Errorf("%s: %w", op, err)
		s.log.Error(op+" failed", append(fields, zap.Error(err))...)
		return err
	}
	s.log.Warn(op+" rejected", append(fields, zap.Error(err))...)
	return err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func invalidOwner(productID int64) error {
	return fmt.Errorf("%w: product %d belongs to another account", ErrConflict, productID)
}

func notOwned(productID int64) error {
	return fmt.Errorf("%w: product %d is not in the account's catalog", ErrConflict, productID)
}
