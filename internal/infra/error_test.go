//go:build unit

package infra_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bruceg7333/water-shop-api/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		kind []infra.RepositoryErrorKind
		want infra.RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: infra.KindNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: infra.KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: infra.KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: infra.KindForeignKeyViolated},
		{name: "check violation", err: &pgconn.PgError{Code: "23514"}, want: infra.KindCheckViolated},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: infra.KindConflict},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: infra.KindConflict},
		{name: "generic failure", err: errors.New("connection reset"), want: infra.KindDBFailure},
		{name: "explicit kind wins", err: errors.New("boom"), kind: []infra.RepositoryErrorKind{infra.KindNotFound}, want: infra.KindNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := infra.WrapRepoErr("test op", tc.err, tc.kind...)
			assert.True(t, infra.IsKind(got, tc.want), "expected kind [%v] but got (%v)", tc.want, got)
			assert.ErrorIs(t, got, tc.err)
		})
	}
}

func TestIsKind_NonRepositoryError(t *testing.T) {
	assert.False(t, infra.IsKind(errors.New("plain"), infra.KindDBFailure))
	assert.False(t, infra.IsKind(nil, infra.KindDBFailure))
}

func TestIsRetryable(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "raw serialization failure", err: fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"}), want: true},
		{name: "wrapped deadlock", err: infra.WrapRepoErr("update stock", &pgconn.PgError{Code: "40P01"}), want: true},
		{name: "lost compare-and-set", err: infra.WrapRepoErr("update status", pgx.ErrNoRows, infra.KindConflict), want: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}},
		{name: "not found", err: infra.WrapRepoErr("find order", pgx.ErrNoRows)},
		{name: "plain error", err: errors.New("connection reset")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, infra.IsRetryable(tc.err))
		})
	}
}
