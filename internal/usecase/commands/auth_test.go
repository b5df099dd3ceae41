//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/user"
	"github.com/bruceg7333/water-shop-api/internal/pkg/clock"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/pkg/jwt"
	"github.com/bruceg7333/water-shop-api/internal/pkg/password"
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/tests/common/builder"
	queriesmock "github.com/bruceg7333/water-shop-api/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testPassword = "password123"

type AuthCommandsTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	h          *txHarness
	readStore  *queriesmock.MockUserReadStore
	jwtService *jwt.Service
	useCase    commands.AuthCommands
	hash       string
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) SetupSuite() {
	hash, err := password.Hash(testPassword)
	s.Require().NoError(err)
	s.hash = hash
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.h = newTxHarness(s.ctrl)
	s.readStore = queriesmock.NewMockUserReadStore(s.ctrl)
	s.jwtService = jwt.NewService("test-secret-key", 15*time.Minute, 24*time.Hour)
	s.useCase = commands.NewAuthCommands(s.h.uow, s.h.users, s.readStore, s.jwtService, clock.NewMockClock(testNow))
}

func (s *AuthCommandsTestSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *AuthCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthCommandsTestSuite) givenUser(b *builder.UserBuilder) *user.User {
	u, err := b.WithPasswordHash(s.hash).BuildDomain()
	s.Require().NoError(err)
	s.h.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any(), u.Email()).Return(u, nil)
	return u
}

func (s *AuthCommandsTestSuite) TestLogin() {
	s.Run("issues a token pair", func() {
		u := s.givenUser(builder.NewUserBuilder())
		s.h.users.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), u.ID(), testNow).Return(nil)

		res, err := s.useCase.Login(context.Background(), commands.LoginInput{Email: "buyer@example.com", Password: testPassword})

		s.Require().NoError(err)
		s.Equal(u.ID(), res.UserID)
		s.Equal(user.RoleCustomer, res.Role)
		claims, err := s.jwtService.ValidateToken(res.TokenPair.AccessToken)
		s.Require().NoError(err)
		s.Equal(u.ID(), claims.UserID)
		_, err = s.jwtService.ValidateRefreshToken(res.TokenPair.RefreshToken)
		s.NoError(err)
	})

	s.Run("last login failure does not block the login", func() {
		u := s.givenUser(builder.NewUserBuilder().AsAdmin())
		s.h.users.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), u.ID(), testNow).Return(assert.AnError)

		res, err := s.useCase.Login(context.Background(), commands.LoginInput{Email: "buyer@example.com", Password: testPassword})

		s.Require().NoError(err)
		s.Equal(user.RoleAdmin, res.Role)
	})

	s.Run("wrong password", func() {
		s.givenUser(builder.NewUserBuilder())

		_, err := s.useCase.Login(context.Background(), commands.LoginInput{Email: "buyer@example.com", Password: "not-the-password"})

		s.ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("unknown email looks like a wrong password", func() {
		s.h.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, notFoundErr())

		_, err := s.useCase.Login(context.Background(), commands.LoginInput{Email: "nobody@example.com", Password: testPassword})

		s.ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("inactive account", func() {
		s.givenUser(builder.NewUserBuilder().AsInactive())

		_, err := s.useCase.Login(context.Background(), commands.LoginInput{Email: "buyer@example.com", Password: testPassword})

		s.ErrorIs(err, commands.ErrUserInactive)
	})

	s.Run("malformed email", func() {
		_, err := s.useCase.Login(context.Background(), commands.LoginInput{Email: "not-an-email", Password: testPassword})

		s.True(errs.Is(err, commands.ErrInvalidCredentials))
	})
}

func (s *AuthCommandsTestSuite) TestRefreshToken() {
	s.Run("reissues with the current role", func() {
		b := builder.NewUserBuilder()
		refresh, err := s.jwtService.GenerateRefreshToken(b.ID, user.RoleCustomer)
		s.Require().NoError(err)
		s.readStore.EXPECT().FindByID(gomock.Any(), b.ID).Return(b.AsAdmin().BuildReadModel(), nil)

		pair, err := s.useCase.RefreshToken(context.Background(), refresh)

		s.Require().NoError(err)
		claims, err := s.jwtService.ValidateToken(pair.AccessToken)
		s.Require().NoError(err)
		s.Equal(user.RoleAdmin.String(), claims.Role)
	})

	s.Run("access token is not a refresh token", func() {
		b := builder.NewUserBuilder()
		access, err := s.jwtService.GenerateToken(b.ID, user.RoleCustomer)
		s.Require().NoError(err)

		_, err = s.useCase.RefreshToken(context.Background(), access)

		s.True(errs.Is(err, commands.ErrTokenValidation))
	})

	s.Run("disabled since issue", func() {
		b := builder.NewUserBuilder()
		refresh, err := s.jwtService.GenerateRefreshToken(b.ID, user.RoleCustomer)
		s.Require().NoError(err)
		s.readStore.EXPECT().FindByID(gomock.Any(), b.ID).Return(b.AsInactive().BuildReadModel(), nil)

		_, err = s.useCase.RefreshToken(context.Background(), refresh)

		s.ErrorIs(err, commands.ErrUserInactive)
	})

	s.Run("deleted since issue", func() {
		b := builder.NewUserBuilder()
		refresh, err := s.jwtService.GenerateRefreshToken(b.ID, user.RoleCustomer)
		s.Require().NoError(err)
		s.readStore.EXPECT().FindByID(gomock.Any(), b.ID).Return(nil, notFoundErr())

		_, err = s.useCase.RefreshToken(context.Background(), refresh)

		s.ErrorIs(err, errs.ErrUserNotFound)
	})
}
