package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gdg-garage/trip-planner/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, secret string, userID uint, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(expiresIn).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestAuthMiddleware_SlidingSession(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	handler := NewAuthHandler(cfg, nil, nil)

	t.Run("TokenRenewed", func(t *testing.T) {
		// Create a token that expires in 11 hours (less than TokenDuration/2 = 12 hours)
		tokenString := signedToken(t, cfg.JWTSecret, 1, 11*time.Hour)

		req, _ := http.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: tokenString})
		rr := httptest.NewRecorder()

		var seen uint
		nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = UserIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		handler.AuthMiddleware(nextHandler).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status OK, got %v", rr.Code)
		}
		if seen != 1 {
			t.Errorf("expected user 1 in context, got %d", seen)
		}

		// Check if a new cookie was set
		found := false
		for _, c := range rr.Result().Cookies() {
			if c.Name == "auth_token" {
				found = true
				if c.Value == tokenString {
					t.Errorf("expected new token value, but got the old one")
				}
				break
			}
		}
		if !found {
			t.Errorf("expected new auth_token cookie to be set")
		}
	})

	t.Run("TokenNotRenewed", func(t *testing.T) {
		// Create a token that expires in 13 hours (more than TokenDuration/2 = 12 hours)
		tokenString := signedToken(t, cfg.JWTSecret, 1, 13*time.Hour)

		req, _ := http.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: tokenString})
		rr := httptest.NewRecorder()

		nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		handler.AuthMiddleware(nextHandler).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status OK, got %v", rr.Code)
		}

		// Check that no NEW auth_token cookie was set
		for _, c := range rr.Result().Cookies() {
			if c.Name == "auth_token" {
				t.Errorf("did not expect a new auth_token cookie to be set")
			}
		}
	})
}

func TestAuthMiddleware_PassesThroughWithoutCredentials(t *testing.T) {
	handler := NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, nil, nil)

	cases := map[string]func(r *http.Request){
		"NoCookie": func(r *http.Request) {},
		"ExpiredToken": func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "auth_token", Value: signedToken(t, "test-secret", 1, -time.Hour)})
		},
		"Garbage": func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "auth_token", Value: "not-a-jwt"})
		},
	}

	for name, prepare := range cases {
		t.Run(name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/", nil)
			prepare(req)
			rr := httptest.NewRecorder()

			authenticated := true
			handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, authenticated = UserIDFromContext(r.Context())
			})).ServeHTTP(rr, req)

			if authenticated {
				t.Error("expected request to reach the handler unauthenticated")
			}
		})
	}
}
