package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"unwind/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signedToken(t *testing.T, userID, role string) string {
	t.Helper()
	claims := &Claims{
		Username: "guest@example.com",
		UserID:   userID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestAuthenticateRejectsSpoofedUpgradeOnMutation(t *testing.T) {
	called := false
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/api/bookings/room/r1", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()

	handler(rec, req, nil)

	if called {
		t.Fatal("handler ran for a POST with upgrade headers and no token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticatePassesWebSocketUpgradeThrough(t *testing.T) {
	called := false
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/live/bookings", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()

	handler(rec, req, nil)

	if !called {
		t.Fatal("GET upgrade request should reach the handler for its own auth")
	}
}

func TestValidateJWT(t *testing.T) {
	token := signedToken(t, "u123", "user")

	claims, err := ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "u123" || claims.Role != "user" {
		t.Errorf("claims = %q/%q, want u123/user", claims.UserID, claims.Role)
	}

	for _, bad := range []string{
		"",
		token,            // missing prefix
		"Bearer ",        // prefix only
		"Basic " + token, // wrong scheme
		"Bearer not-a-jwt",
	} {
		if _, err := ValidateJWT(bad); err == nil {
			t.Errorf("ValidateJWT(%q) accepted an invalid header", bad)
		}
	}
}
