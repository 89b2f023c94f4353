package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/repository"
	"campusbuddy/pkg/apperror"
	"campusbuddy/pkg/jwt"
)

type TokenVerifier interface {
	Verify(token string) (entity.Identity, error)
}

type AuthUsecase interface {
	// Authenticate verifies a bearer token and resolves the caller's profile,
	// creating it on first contact.
	Authenticate(ctx context.Context, token string) (entity.User, error)
}

type authUsecase struct {
	verifier TokenVerifier
	userRepo repository.UserRepository
	logger   *zap.Logger
	now      Clock
}

func NewAuthUsecase(verifier TokenVerifier, userRepo repository.UserRepository, logger *zap.Logger) AuthUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authUsecase{
		verifier: verifier,
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func (u *authUsecase) Authenticate(ctx context.Context, token string) (entity.User, error) {
	if token == "" {
		return entity.User{}, apperror.Unauthenticated(apperror.ReasonMalformed, "missing bearer token")
	}

	identity, err := u.verifier.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			return entity.User{}, apperror.Unauthenticated(apperror.ReasonExpired, "token expired")
		case errors.Is(err, jwt.ErrMalformedToken):
			return entity.User{}, apperror.Unauthenticated(apperror.ReasonMalformed, "malformed token")
		default:
			return entity.User{}, apperror.Unauthenticated(apperror.ReasonUnknown, "invalid token")
		}
	}

	profile := entity.NewUserFromIdentity(identity, u.now())
	user, err := u.userRepo.GetOrCreate(ctx, profile)
	if err != nil {
		// The profile is not required to exist; fall back to one built from claims.
		u.logger.Warn("profile lookup failed, using claims", zap.String("user_id", identity.UserId), zap.Error(err))
		return profile, nil
	}

	if user.TokensValidAfter != nil && !identity.IssuedAt.IsZero() && identity.IssuedAt.Before(revocationCutoff(*user.TokensValidAfter)) {
		return entity.User{}, apperror.Unauthenticated(apperror.ReasonRevoked, "token revoked")
	}

	return user, nil
}

// revocationCutoff rounds the revocation time up to a whole second. iat only
// has second precision, so a token issued in the revoking second is rejected too.
func revocationCutoff(revokedAt time.Time) time.Time {
	cutoff := revokedAt.Truncate(time.Second)
	if cutoff.Before(revokedAt) {
		cutoff = cutoff.Add(time.Second)
	}
	return cutoff
}
