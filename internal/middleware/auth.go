package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"listing-checkout/internal/dto"
)

// SignInRedirect is where unauthenticated requests are sent.
const SignInRedirect = "/sign-in"

// Auth validates the bearer token and puts the subject into the echo
// context as "user_id". Requests without a valid session get a 401 with
// the sign-in redirect target; nothing is retried automatically.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if header == "" || token == header {
				return unauthenticated(c)
			}

			parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !parsed.Valid {
				return unauthenticated(c)
			}

			sub, err := parsed.Claims.GetSubject()
			if err != nil || sub == "" {
				return unauthenticated(c)
			}

			c.Set("user_id", sub)
			return next(c)
		}
	}
}

// UserID reads the authenticated user from the echo context. Empty when
// the request did not pass Auth.
func UserID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error:    "sign-in required",
		Redirect: SignInRedirect,
	})
}
