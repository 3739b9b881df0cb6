package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/school-admin-api/internal/models"
)

// Token decode failures. The HTTP layer collapses all of them into 401.
var (
	ErrTokenMalformed = errors.New("session token is malformed")
	ErrTokenSignature = errors.New("session token signature is invalid")
	ErrTokenExpired   = errors.New("session token is expired")
)

// sessionClaims is the wire form of models.Claims. Short keys keep the
// cookie small.
type sessionClaims struct {
	EmployeeID int64       `json:"eid"`
	Role       models.Role `json:"r"`
	jwt.RegisteredClaims
}

// TokenCodec signs and validates HS256 session tokens with a process-wide
// secret. The secret is copied on construction and never changes afterwards.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec constructs a codec for the given symmetric key.
func NewTokenCodec(secret []byte) *TokenCodec {
	key := make([]byte, len(secret))
	copy(key, secret)
	return &TokenCodec{secret: key, now: time.Now}
}

// Encode serialises and signs claims. Expiry is stored as an absolute Unix
// timestamp with second precision.
func (c *TokenCodec) Encode(claims models.Claims) (string, error) {
	if !claims.Role.Valid() {
		return "", fmt.Errorf("encode session token: unknown role %q", claims.Role)
	}
	payload := sessionClaims{
		EmployeeID: claims.EmployeeID,
		Role:       claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Decode validates the signature and expiry of token and returns its claims.
func (c *TokenCodec) Decode(token string) (models.Claims, error) {
	var payload sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &payload, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return models.Claims{}, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return models.Claims{}, fmt.Errorf("%w: %v", ErrTokenSignature, err)
		default:
			return models.Claims{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
	}
	if !parsed.Valid || !payload.Role.Valid() || payload.ExpiresAt == nil {
		return models.Claims{}, ErrTokenMalformed
	}

	return models.Claims{
		EmployeeID: payload.EmployeeID,
		Role:       payload.Role,
		ExpiresAt:  payload.ExpiresAt.Time.UTC(),
	}, nil
}
