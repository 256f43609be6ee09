package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DefaultTokenTTL is how long issued tokens stay valid unless configured otherwise.
const DefaultTokenTTL = 360000 * time.Second

var (
	// ErrTokenMalformed is returned when a token cannot be parsed or carries no user.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenSignatureInvalid is returned when the signature does not match the secret.
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// UserClaim identifies the token's user.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims is the token payload: {"user":{"id":...}} plus expiry.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256 session tokens.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec creates a codec signing with secret; tokens live for ttl.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token for userID expiring ttl from now.
func (c *TokenCodec) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token and returns the embedded user id.
func (c *TokenCodec) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", classify(err, claims)
	}
	if !token.Valid {
		return "", ErrTokenSignatureInvalid
	}
	if claims.User.ID == "" {
		return "", ErrTokenMalformed
	}
	return claims.User.ID, nil
}

// classify collapses jwt validation errors into the codec's errors. Expiry
// wins over a bad signature or an unusable signing method: claims are decoded
// before the key lookup, so their expiry is checked directly.
func classify(err error, claims *Claims) error {
	var ve *jwt.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	switch {
	case ve.Errors&jwt.ValidationErrorMalformed != 0:
		return ErrTokenMalformed
	case ve.Errors&jwt.ValidationErrorExpired != 0:
		return ErrTokenExpired
	case ve.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0:
		if !claims.VerifyExpiresAt(time.Now(), false) {
			return ErrTokenExpired
		}
		return ErrTokenSignatureInvalid
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
