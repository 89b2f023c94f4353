package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campusbuddy/internal/entity"
	"campusbuddy/pkg/config"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrMalformedToken = errors.New("malformed token")
)

// Verifier turns a bearer token issued by the identity provider into an Identity.
// It accepts HS256 tokens signed with a shared secret, or RS256 tokens when a
// public key is configured.
type Verifier struct {
	secret    []byte
	publicKey *rsa.PublicKey
	issuer    string
	audience  string
}

func NewHMACVerifier(secret, issuer, audience string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer, audience: audience}
}

func NewRSAVerifier(publicKeyPEM []byte, issuer, audience string) (*Verifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("jwt: parse public key: %w", err)
	}
	return &Verifier{publicKey: key, issuer: issuer, audience: audience}, nil
}

// NewVerifier picks RS256 when a public key file is configured, HS256 otherwise.
func NewVerifier(cfg config.AuthConfig) (*Verifier, error) {
	if cfg.PublicKeyFile != "" {
		pem, err := os.ReadFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("jwt: read public key: %w", err)
		}
		return NewRSAVerifier(pem, cfg.Issuer, cfg.Audience)
	}
	if cfg.SigningSecret == "" {
		return nil, errors.New("jwt: signing secret required")
	}
	return NewHMACVerifier(cfg.SigningSecret, cfg.Issuer, cfg.Audience), nil
}

func (v *Verifier) parserOptions() []jwt.ParserOption {
	opts := []jwt.ParserOption{jwt.WithIssuedAt()}
	if v.publicKey != nil {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	} else {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}
	return opts
}

func (v *Verifier) key(token *jwt.Token) (interface{}, error) {
	if v.publicKey != nil {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, ErrInvalidToken
		}
		return v.publicKey, nil
	}
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}
	return v.secret, nil
}

// Verify validates the token and extracts the caller's identity.
func (v *Verifier) Verify(tokenString string) (entity.Identity, error) {
	if tokenString == "" {
		return entity.Identity{}, ErrMalformedToken
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.key, v.parserOptions()...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return entity.Identity{}, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			return entity.Identity{}, ErrMalformedToken
		default:
			return entity.Identity{}, ErrInvalidToken
		}
	}
	if !token.Valid {
		return entity.Identity{}, ErrInvalidToken
	}

	userId := firstString(claims, "sub", "user_id", "uid")
	if userId == "" {
		return entity.Identity{}, ErrMalformedToken
	}

	identity := entity.Identity{
		UserId: userId,
		Name:   firstString(claims, "name"),
		Email:  firstString(claims, "email"),
		Claims: map[string]any(claims),
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		identity.IssuedAt = iat.Time
	}
	return identity, nil
}

// GenerateToken signs an HS256 token for the given identity. It is meant for
// local development and tests; production tokens come from the identity provider.
func (v *Verifier) GenerateToken(identity entity.Identity, ttl time.Duration) (string, error) {
	if v.publicKey != nil {
		return "", errors.New("jwt: cannot sign with a verify-only RSA key")
	}
	now := time.Now()
	issuedAt := identity.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = now
	}
	claims := jwt.MapClaims{
		"sub":   identity.UserId,
		"name":  identity.Name,
		"email": identity.Email,
		"iat":   issuedAt.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	if v.issuer != "" {
		claims["iss"] = v.issuer
	}
	if v.audience != "" {
		claims["aud"] = v.audience
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func firstString(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s, ok := claims[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
