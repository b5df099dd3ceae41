//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/user"
	"github.com/bruceg7333/water-shop-api/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	rows, _ := mockArgs.Get(0).(pgx.Rows)
	return rows, mockArgs.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

// fakeRow copies values into the scan destinations in order, or returns err.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case *string:
			*p = r.values[i].(string)
		case *int:
			*p = r.values[i].(int)
		case *bool:
			*p = r.values[i].(bool)
		case *time.Time:
			*p = r.values[i].(time.Time)
		case **time.Time:
			*p, _ = r.values[i].(*time.Time)
		case *pgtype.UUID:
			*p = r.values[i].(pgtype.UUID)
		case *pgtype.Timestamptz:
			*p = r.values[i].(pgtype.Timestamptz)
		}
	}
	return nil
}

func TestUpdateLastLogin(t *testing.T) {
	testUserID := uuid.New()
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mockError error
		wantError bool
	}{
		{name: "success", mockError: nil, wantError: false},
		{name: "database error", mockError: assert.AnError, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("Exec", mock.Anything, updateUserLastLogin, []any{testUserID, at}).
				Return(pgconn.NewCommandTag("UPDATE 1"), tt.mockError)

			repo := NewUserRepository()
			err := repo.UpdateLastLogin(context.Background(), db, testUserID, at)

			if tt.wantError {
				assert.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
			} else {
				assert.NoError(t, err)
			}
			db.AssertExpectations(t)
		})
	}
}

func TestFindByEmail(t *testing.T) {
	email, err := user.NewEmail("buyer@example.com")
	require.NoError(t, err)
	id := uuid.New()
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, findUserByEmail, []any{"buyer@example.com"}).
			Return(fakeRow{values: []any{id, "buyer@example.com", "buyer", "hash", "user", (*time.Time)(nil), true, created, created}})

		u, err := NewUserRepository().FindByEmail(context.Background(), db, email)

		require.NoError(t, err)
		assert.Equal(t, id, u.ID())
		assert.Equal(t, user.RoleCustomer, u.Role())
		assert.True(t, u.IsActive())
		db.AssertExpectations(t)
	})

	t.Run("not found is classified", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, findUserByEmail, mock.Anything).Return(fakeRow{err: pgx.ErrNoRows})

		_, err := NewUserRepository().FindByEmail(context.Background(), db, email)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
