//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyTryInsert(t *testing.T) {
	key, userID := uuid.New(), uuid.New()
	expiresAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		tag          string
		mockErr      error
		wantInserted bool
		wantKind     infra.RepositoryErrorKind
	}{
		{name: "fresh key is inserted", tag: "INSERT 0 1", wantInserted: true},
		{name: "existing key is left alone", tag: "INSERT 0 0", wantInserted: false},
		{name: "database error", tag: "", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("Exec", mock.Anything, tryInsertIdempotencyKey,
				[]any{key, userID, "POST /orders", "hash", pgconv.TimeToPgtype(expiresAt)}).
				Return(pgconn.NewCommandTag(tc.tag), tc.mockErr)

			inserted, err := NewIdempotencyRepository().TryInsert(context.Background(), db, key, userID, "POST /orders", "hash", expiresAt)

			if tc.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.wantKind), "expected kind [%v] but got (%v)", tc.wantKind, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantInserted, inserted)
			db.AssertExpectations(t)
		})
	}
}

func TestIdempotencyGet(t *testing.T) {
	key, userID, orderID := uuid.New(), uuid.New(), uuid.New()
	expiresAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("completed key carries the order", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, getIdempotencyKey, []any{key, userID}).Return(fakeRow{values: []any{
			key, userID, "POST /orders", "completed", "hash", pgconv.UUIDToPgtype(orderID), pgconv.TimeToPgtype(expiresAt),
		}})

		rec, err := NewIdempotencyRepository().Get(context.Background(), db, key, userID)

		require.NoError(t, err)
		assert.Equal(t, "completed", rec.Status)
		require.NotNil(t, rec.ResultOrderID)
		assert.Equal(t, orderID, *rec.ResultOrderID)
		assert.True(t, expiresAt.Equal(rec.ExpiresAt))
	})

	t.Run("processing key has no order yet", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, getIdempotencyKey, []any{key, userID}).Return(fakeRow{values: []any{
			key, userID, "POST /orders", "processing", "hash", pgtype.UUID{}, pgconv.TimeToPgtype(expiresAt),
		}})

		rec, err := NewIdempotencyRepository().Get(context.Background(), db, key, userID)

		require.NoError(t, err)
		assert.Nil(t, rec.ResultOrderID)
	})

	t.Run("missing key is classified", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, getIdempotencyKey, mock.Anything).Return(fakeRow{err: pgx.ErrNoRows})

		_, err := NewIdempotencyRepository().Get(context.Background(), db, key, userID)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestIdempotencyClaimExpired(t *testing.T) {
	key, userID := uuid.New(), uuid.New()
	expiresAt := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		tag     string
		claimed bool
	}{
		{tag: "UPDATE 1", claimed: true},
		{tag: "UPDATE 0", claimed: false},
	} {
		t.Run(tc.tag, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("Exec", mock.Anything, claimExpiredIdempotencyKey, []any{key, userID, "hash2", pgconv.TimeToPgtype(expiresAt)}).
				Return(pgconn.NewCommandTag(tc.tag), nil)

			claimed, err := NewIdempotencyRepository().ClaimExpired(context.Background(), db, key, userID, "hash2", expiresAt)

			require.NoError(t, err)
			assert.Equal(t, tc.claimed, claimed)
		})
	}
}
