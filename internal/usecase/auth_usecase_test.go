package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusbuddy/internal/entity"
	"campusbuddy/pkg/apperror"
	"campusbuddy/pkg/jwt"
)

type stubVerifier struct {
	identity entity.Identity
	err      error
}

func (s stubVerifier) Verify(string) (entity.Identity, error) {
	return s.identity, s.err
}

func newAuthFixture(verifier TokenVerifier, users *fakeUsers) *authUsecase {
	uc := NewAuthUsecase(verifier, users, nil).(*authUsecase)
	uc.now = fixedClock
	return uc
}

func TestAuthenticateCreatesProfileOnFirstContact(t *testing.T) {
	users := newFakeUsers()
	uc := newAuthFixture(stubVerifier{identity: entity.Identity{UserId: "new-user", Email: "new@campus.edu", IssuedAt: testNow}}, users)

	user, err := uc.Authenticate(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "new-user", user.Id)
	assert.Equal(t, "new@campus.edu", user.Name)
	assert.Equal(t, entity.RoleStudent, user.Role)
	assert.Zero(t, user.Points)
	assert.Contains(t, users.users, "new-user")

	again, err := uc.Authenticate(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, user, again)
}

func TestAuthenticateVerifierErrors(t *testing.T) {
	cases := []struct {
		err    error
		reason string
	}{
		{jwt.ErrExpiredToken, apperror.ReasonExpired},
		{jwt.ErrMalformedToken, apperror.ReasonMalformed},
		{jwt.ErrInvalidToken, apperror.ReasonUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.reason, func(t *testing.T) {
			uc := newAuthFixture(stubVerifier{err: tc.err}, newFakeUsers())
			_, err := uc.Authenticate(context.Background(), "token")
			require.Error(t, err)
			appErr := apperror.From(err)
			assert.Equal(t, apperror.KindAuthentication, appErr.Kind)
			assert.Equal(t, tc.reason, appErr.Reason)
		})
	}

	uc := newAuthFixture(stubVerifier{}, newFakeUsers())
	_, err := uc.Authenticate(context.Background(), "")
	assert.Equal(t, apperror.ReasonMalformed, apperror.From(err).Reason)
}

func TestAuthenticateRejectsRevokedTokens(t *testing.T) {
	revokedAt := testNow.Add(500 * time.Millisecond)
	holder := student
	holder.TokensValidAfter = &revokedAt
	users := newFakeUsers(holder)

	older := newAuthFixture(stubVerifier{identity: entity.Identity{UserId: student.Id, IssuedAt: testNow.Add(-time.Minute)}}, users)
	_, err := older.Authenticate(context.Background(), "token")
	assert.Equal(t, apperror.ReasonRevoked, apperror.From(err).Reason)

	// iat has second precision, so a token issued in the revoking second is rejected.
	sameSecond := newAuthFixture(stubVerifier{identity: entity.Identity{UserId: student.Id, IssuedAt: testNow}}, users)
	_, err = sameSecond.Authenticate(context.Background(), "token")
	assert.Equal(t, apperror.ReasonRevoked, apperror.From(err).Reason)

	nextSecond := newAuthFixture(stubVerifier{identity: entity.Identity{UserId: student.Id, IssuedAt: testNow.Add(time.Second)}}, users)
	_, err = nextSecond.Authenticate(context.Background(), "token")
	assert.NoError(t, err)
}

func TestRevocationCutoff(t *testing.T) {
	whole := testNow.Truncate(time.Second)
	assert.Equal(t, whole, revocationCutoff(whole))
	assert.Equal(t, whole.Add(time.Second), revocationCutoff(whole.Add(time.Nanosecond)))
	assert.Equal(t, whole.Add(time.Second), revocationCutoff(whole.Add(999*time.Millisecond)))
}

func TestAuthenticateSynthesisesProfileWhenStoreIsDown(t *testing.T) {
	users := newFakeUsers()
	users.err = errStoreDown
	uc := newAuthFixture(stubVerifier{identity: entity.Identity{UserId: "u1", Name: "Kim"}}, users)

	user, err := uc.Authenticate(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.Id)
	assert.Equal(t, "Kim", user.Name)
	assert.Empty(t, users.users)
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	token, ok = BearerToken("bearer xyz")
	assert.True(t, ok)
	assert.Equal(t, "xyz", token)

	_, ok = BearerToken("Basic abc")
	assert.False(t, ok)
	_, ok = BearerToken("Bearer")
	assert.False(t, ok)
}
