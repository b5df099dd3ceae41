package usecase

import (
	"github.com/bruceg7333/water-shop-api/internal/domain/user"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/pkg/jwt"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidAccessToken = errs.New("invalid access token")

// TokenValidator turns an access token into the calling actor.
type TokenValidator interface {
	ValidateToken(tokenString string) (shared.Actor, error)
}

// accessTokenValidator trusts the signed claims and does not consult the user store; a
// deactivated account keeps access until its token expires.
type accessTokenValidator struct {
	tokens *jwt.Service
}

func NewTokenValidator(tokens *jwt.Service) TokenValidator {
	return &accessTokenValidator{tokens: tokens}
}

func (v *accessTokenValidator) ValidateToken(tokenString string) (shared.Actor, error) {
	claims, err := v.tokens.ValidateToken(tokenString)
	if err != nil {
		return shared.Actor{}, errs.Mark(errs.Wrap(err, "verify access token"), ErrInvalidAccessToken)
	}
	if claims.UserID == uuid.Nil {
		return shared.Actor{}, errs.Wrap(ErrInvalidAccessToken, "token has no subject")
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return shared.Actor{}, errs.Mark(errs.Wrapf(err, "token role %q", claims.Role), ErrInvalidAccessToken)
	}

	return shared.Actor{UserID: claims.UserID, Role: role}, nil
}
