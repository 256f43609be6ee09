package auth

import (
	"log/slog"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "devconnector/internal/errors"
)

const (
	// TokenHeader carries the session token on protected requests.
	TokenHeader = "x-auth-token"
	// userContextKey is where the guard stores the authenticated user id.
	userContextKey = "user"
)

// Guard rejects requests without a valid token and stores the token's user id
// on the echo context.
func Guard(codec *TokenCodec, logger *slog.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  userContextKey,
		TokenLookup: "header:" + TokenHeader,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return codec.Verify(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(TokenHeader) == "" {
				return apperrors.ErrNoToken
			}
			logger.DebugContext(c.Request().Context(), "token rejected", slog.Any("error", err))
			return apperrors.ErrInvalidToken
		},
	})
}

// UserID returns the user id stored by Guard.
func UserID(c echo.Context) string {
	id, _ := c.Get(userContextKey).(string)
	return id
}
