package infra

import (
	"log/slog"

	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// RepositoryErrorKind is what callers above the store branch on; the PostgreSQL detail
// stays in the wrapped cause.
type RepositoryErrorKind string

const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindCheckViolated      RepositoryErrorKind = "CHECK_VIOLATED"
	// KindConflict covers lost compare-and-set updates as well as serialization failures.
	KindConflict RepositoryErrorKind = "CONFLICT"
)

var kindsByCode = map[string]RepositoryErrorKind{
	"23505": KindDuplicateKey,
	"23503": KindForeignKeyViolated,
	"23514": KindCheckViolated,
	"40001": KindConflict,
	"40P01": KindConflict,
}

type RepositoryError struct {
	Kind  RepositoryErrorKind
	op    string
	cause error
}

func (e RepositoryError) Error() string {
	if e.cause == nil {
		return string(e.Kind) + ": " + e.op
	}
	return string(e.Kind) + ": " + e.cause.Error()
}

func (e RepositoryError) Unwrap() error { return e.cause }

// WrapRepoErr classifies err by its PostgreSQL code unless kind is given explicitly.
// Not-found and conflict results are part of normal operation and are not logged.
func WrapRepoErr(op string, err error, kind ...RepositoryErrorKind) error {
	k := classify(err)
	if len(kind) > 0 {
		k = kind[0]
	}

	if k != KindNotFound && k != KindConflict {
		slog.Error("repository failure", "op", op, "kind", string(k), "error", err)
	}

	var cause error
	if err != nil {
		cause = errs.Wrap(err, op)
	}
	return RepositoryError{Kind: k, op: op, cause: cause}
}

func classify(err error) RepositoryErrorKind {
	if errs.Is(err, pgx.ErrNoRows) {
		return KindNotFound
	}
	var pgErr *pgconn.PgError
	if errs.As(err, &pgErr) {
		if k, ok := kindsByCode[pgErr.Code]; ok {
			return k
		}
	}
	return KindDBFailure
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	return errs.As(err, &e) && e.Kind == kind
}

// IsRetryable reports whether rerunning the whole transaction may succeed. Raw driver
// errors count too, since commit failures never pass through WrapRepoErr.
func IsRetryable(err error) bool {
	if IsKind(err, KindConflict) {
		return true
	}
	var pgErr *pgconn.PgError
	return errs.As(err, &pgErr) && kindsByCode[pgErr.Code] == KindConflict
}
