package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken создаёт access-токен HS256 с user_id и role.
// Сервер токены не выпускает, функцию вызывают команда token консоли и тесты.
func GenerateToken(secret string, userID int, role string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"role":       role,
		"token_type": "access",
		"exp":        now.Add(duration).Unix(),
		"iat":        now.Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
