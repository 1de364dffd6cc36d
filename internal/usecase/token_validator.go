package usecase

import (
	"storefront-api/internal/domain/user"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrAnonymousToken = errs.New("token carries no user id")

// TokenValidator resolves an access token issued by the account service into the caller identity.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

// An empty role claim is treated as a customer; tokens minted before roles existed carry none.
func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, "", ErrAnonymousToken
	}

	if claims.Role == "" {
		return claims.UserID, user.RoleCustomer, nil
	}
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Wrap(err, "token role claim")
	}

	return claims.UserID, role, nil
}
