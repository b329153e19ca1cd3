package middleware

import (
	"errors"
	"net/http"
	"strings"

	"blogfeed/internal/logger"
	"blogfeed/internal/reqctx"
	helpers "blogfeed/internal/utils/helpres"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	errMissingToken = errors.New("отсутствует access token")
	errBadToken     = errors.New("неверный или просроченный токен")
	errBadPayload   = errors.New("недопустимый payload")
)

// JWTAuth проверяет bearer-токен и кладёт user_id автора в контекст. Токены не выдаёт.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			userID, err := userFromRequest(r, secret)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("JWTAuth: "+err.Error(), zap.Error(err))
				switch {
				case errors.Is(err, errMissingToken):
					helpers.Error(w, http.StatusUnauthorized, "Missing access token")
				case errors.Is(err, errBadPayload):
					helpers.Error(w, http.StatusUnauthorized, "Invalid token payload")
				default:
					helpers.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				}
				return
			}

			ctx := reqctx.WithUserID(r.Context(), userID)
			logger.WithCtx(ctx).Debug("JWTAuth: токен валиден")

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalJWTAuth для публичных маршрутов: валидный токен даёт user_id в контексте,
// без токена или с плохим токеном запрос идёт анонимно.
func OptionalJWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := userFromRequest(r, secret)
			if err != nil {
				if !errors.Is(err, errMissingToken) {
					logger.WithCtx(r.Context()).Debug("OptionalJWTAuth: токен отклонён, запрос анонимный", zap.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(reqctx.WithUserID(r.Context(), userID)))
		})
	}
}

func userFromRequest(r *http.Request, secret string) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errMissingToken
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if secret == "" || err != nil || !token.Valid {
		return "", errors.Join(errBadToken, err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || strings.TrimSpace(userID) == "" {
		return "", errBadPayload
	}
	return userID, nil
}
