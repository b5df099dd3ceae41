//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/internal/domain/points"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/pkg/clock"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"
	"github.com/bruceg7333/water-shop-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PointsUseCaseTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	h       *txHarness
	useCase commands.PointsCommands
	userID  uuid.UUID
}

func TestPointsUseCaseSuite(t *testing.T) {
	suite.Run(t, new(PointsUseCaseTestSuite))
}

func (s *PointsUseCaseTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.h = newTxHarness(s.ctrl)
	s.useCase = commands.NewPointsUseCase(s.h.uow, decimal.NewFromInt(1), clock.NewMockClock(testNow))
	s.userID = uuid.New()
}

func (s *PointsUseCaseTestSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *PointsUseCaseTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *PointsUseCaseTestSuite) movement(amount int64) commands.PointsMovementInput {
	return commands.PointsMovementInput{
		UserID: s.userID,
		Amount: amount,
		Source: string(points.SourceSignin),
		Title:  "Daily sign-in",
	}
}

func (s *PointsUseCaseTestSuite) expectAppend(balance int64) *points.Entry {
	var appended points.Entry
	s.h.points.EXPECT().LockBalance(gomock.Any(), gomock.Any(), s.userID).Return(balance, nil)
	s.h.points.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ db.DBTX, e *points.Entry) error {
			appended = *e
			return nil
		})
	return &appended
}

func (s *PointsUseCaseTestSuite) TestCredit() {
	appended := s.expectAppend(15)

	res, err := s.useCase.Credit(context.Background(), s.movement(10))

	s.Require().NoError(err)
	s.Equal(int64(10), res.Applied)
	s.Equal(int64(25), res.BalanceAfter)
	s.Equal(points.DirectionIncrease, res.Direction)
	s.Equal(int64(25), appended.BalanceAfter())
}

func (s *PointsUseCaseTestSuite) TestDebit() {
	s.Run("within balance", func() {
		s.expectAppend(40)

		res, err := s.useCase.Debit(context.Background(), s.movement(15))

		s.Require().NoError(err)
		s.Equal(int64(15), res.Applied)
		s.Equal(int64(25), res.BalanceAfter)
	})

	s.Run("clamped to balance", func() {
		appended := s.expectAppend(25)

		res, err := s.useCase.Debit(context.Background(), s.movement(100))

		s.Require().NoError(err)
		s.Equal(int64(25), res.Applied)
		s.Zero(res.BalanceAfter)
		s.Equal(int64(-25), appended.Signed())
	})

	s.Run("empty balance", func() {
		s.h.points.EXPECT().LockBalance(gomock.Any(), gomock.Any(), s.userID).Return(int64(0), nil)

		_, err := s.useCase.Debit(context.Background(), s.movement(5))

		s.ErrorIs(err, points.ErrNothingToDebit)
	})
}

func (s *PointsUseCaseTestSuite) TestValidation() {
	testCases := []struct {
		name   string
		mutate func(in *commands.PointsMovementInput)
	}{
		{name: "zero amount", mutate: func(in *commands.PointsMovementInput) { in.Amount = 0 }},
		{name: "unknown source", mutate: func(in *commands.PointsMovementInput) { in.Source = "lottery" }},
		{name: "empty title", mutate: func(in *commands.PointsMovementInput) { in.Title = "" }},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			in := s.movement(10)
			tc.mutate(&in)

			_, err := s.useCase.Credit(context.Background(), in)

			s.True(errs.Is(err, errs.ErrDomainValidation), "got %v", err)
		})
	}
}

func (s *PointsUseCaseTestSuite) TestCreditForCompletedOrder() {
	s.Run("grants once", func() {
		o, err := builder.NewOrderBuilder().WithUserID(s.userID).BuildInStatus(order.StatusCompleted)
		s.Require().NoError(err)
		s.h.orders.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), o.ID()).Return(o, nil)
		s.h.orders.EXPECT().MarkPointsGranted(gomock.Any(), gomock.Any(), o.ID()).Return(&shared.GrantableOrder{
			ID:         o.ID(),
			Number:     o.Number().String(),
			UserID:     s.userID,
			GrandTotal: o.GrandTotal(),
		}, true, nil)
		s.expectAppend(0)

		res, err := s.useCase.CreditForCompletedOrder(context.Background(), o.ID())

		s.Require().NoError(err)
		s.Require().NotNil(res)
		s.Equal(o.GrandTotal().Floor().IntPart(), res.Applied)
	})

	s.Run("already granted returns nil", func() {
		o, err := builder.NewOrderBuilder().WithUserID(s.userID).BuildInStatus(order.StatusCompleted)
		s.Require().NoError(err)
		s.h.orders.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), o.ID()).Return(o, nil)
		s.h.orders.EXPECT().MarkPointsGranted(gomock.Any(), gomock.Any(), o.ID()).Return(nil, false, nil)

		res, err := s.useCase.CreditForCompletedOrder(context.Background(), o.ID())

		s.Require().NoError(err)
		s.Nil(res)
	})

	s.Run("order not completed", func() {
		o, err := builder.NewOrderBuilder().WithUserID(s.userID).BuildInStatus(order.StatusPendingReceipt)
		s.Require().NoError(err)
		s.h.orders.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), o.ID()).Return(o, nil)

		_, err = s.useCase.CreditForCompletedOrder(context.Background(), o.ID())

		s.ErrorIs(err, commands.ErrOrderNotCompleted)
	})
}
