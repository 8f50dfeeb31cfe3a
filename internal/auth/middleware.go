package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gdg-garage/trip-planner/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserIDKey contextKey = "user_id"

func UserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	return userID, ok && userID != 0
}

// AuthMiddleware attaches the caller's user id to the request context when the
// request carries a valid API key or auth cookie. Requests without valid
// credentials pass through unauthenticated; operations reject them through
// Authorize.
func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Check for API Key Header
		if apiKey := r.Header.Get("X-API-KEY"); apiKey != "" {
			userID, err := h.lookupAPIKey(r.Context(), apiKey)
			if err == nil {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserIDKey, userID)))
				return
			}
		}

		// 2. Fallback to JWT Cookie
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, exp, err := h.parseToken(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		// Sliding session: refresh token if it's more than halfway through its duration
		if time.Until(exp) < TokenDuration/2 {
			if newToken, err := h.GenerateToken(userID); err == nil {
				setAuthCookie(w, newToken)
			}
		}

		ctx := h.log.WithOwnerID(r.Context(), userID)
		ctx = context.WithValue(ctx, UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *AuthHandler) parseToken(tokenString string) (uint, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, time.Time{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, time.Time{}, errors.New("invalid token claims")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return 0, time.Time{}, errors.New("invalid token claims")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, time.Time{}, errors.New("token has no expiry")
	}
	return uint(userIDFloat), exp.Time, nil
}

func (h *AuthHandler) lookupAPIKey(ctx context.Context, key string) (uint, error) {
	if h.db == nil {
		return 0, errors.New("api keys unavailable")
	}
	var keyModel models.APIKey
	if err := h.db.WithContext(ctx).Where("key = ?", key).First(&keyModel).Error; err != nil {
		return 0, err
	}
	if keyModel.Expired(time.Now()) {
		return 0, errors.New("api key expired")
	}
	h.db.WithContext(ctx).Model(&keyModel).Update("last_used_at", time.Now())
	return keyModel.UserID, nil
}
