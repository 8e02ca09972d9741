package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func doRequest(t *testing.T, authorization string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	var seenUser string
	h := Auth(testSecret)(func(c echo.Context) error {
		seenUser = UserID(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	return rec, seenUser
}

func signedToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestAuth_ValidToken(t *testing.T) {
	rec, user := doRequest(t, "Bearer "+signedToken(t, testSecret, "u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if user != "u1" {
		t.Fatalf("user = %q, want u1", user)
	}
}

func TestAuth_MissingHeaderRedirectsToSignIn(t *testing.T) {
	rec, _ := doRequest(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, SignInRedirect) {
		t.Fatalf("body = %s, want sign-in redirect", body)
	}
}

func TestAuth_WrongSecretRejected(t *testing.T) {
	rec, _ := doRequest(t, "Bearer "+signedToken(t, "other-secret", "u1"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
