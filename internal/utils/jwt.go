package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken создаёт access-токен автора. Выдачу токенов делает сервис аутентификации,
// здесь только для локальной отладки и тестов.
func GenerateToken(secret, userID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"exp":        time.Now().Add(duration).Unix(),
		"iat":        time.Now().Unix(),
		"token_type": "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
