package commands

import (
	"context"
	"log/slog"

	"github.com/bruceg7333/water-shop-api/internal/domain/auth"
	"github.com/bruceg7333/water-shop-api/internal/domain/user"
	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/pkg/clock"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/pkg/jwt"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = auth.ErrInvalidCredentials
	ErrUserInactive       = queries.ErrUserInactive
	ErrTokenGeneration    = errs.New("token generation failed")
	ErrTokenValidation    = errs.New("token validation failed")
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	UserID    uuid.UUID
	Role      user.Role
	TokenPair *TokenPair
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthCommands interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	users      shared.UserRepository
	readStore  queries.UserReadStore
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	users shared.UserRepository,
	readStore queries.UserReadStore,
	jwtService *jwt.Service,
	clk clock.Clock,
) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		users:      users,
		readStore:  readStore,
		jwtService: jwtService,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	credentials, err := auth.ParseCredentials(in.Email, in.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	var u *user.User
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Users().FindByEmail(ctx, tx.DB(), credentials.Email())
		if err != nil {
			// same error as a password mismatch so accounts cannot be enumerated
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrInvalidCredentials
			}
			return err
		}
		if err := credentials.Authenticate(found); err != nil {
			return err
		}
		u = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	// a failed timestamp update does not fail the login
	err = a.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		return a.users.UpdateLastLogin(ctx, q, u.ID(), a.clock.Now())
	})
	if err != nil {
		slog.Warn("failed to update last login", "user_id", u.ID(), "error", err.Error())
	}

	pair, err := a.issue(u.ID(), u.Role())
	if err != nil {
		return nil, err
	}
	return &LoginResult{UserID: u.ID(), Role: u.Role(), TokenPair: pair}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	// the account may have been disabled or demoted since the token was issued
	_, role, err := queries.ActiveUser(ctx, a.readStore, claims.UserID)
	if err != nil {
		return nil, err
	}
	return a.issue(claims.UserID, role)
}

func (a *authCommandsImpl) issue(userID uuid.UUID, role user.Role) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refreshToken, err := a.jwtService.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
