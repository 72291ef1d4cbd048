package middleware

import (
	"net/http"
	"strings"

	"newsadmin/internal/logger"
	"newsadmin/internal/reqctx"
	helpers "newsadmin/internal/utils/helpres"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// JWTAuth проверяет Bearer access-токен (HS256) и кладёт user_id/role в контекст.
// Токен для сервера непрозрачен: выпускает его внешний сервис с тем же секретом.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			log := logger.WithCtx(r.Context())
			authHeader := r.Header.Get("Authorization")

			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("JWTAuth: отсутствует access token")
				helpers.Error(w, http.StatusUnauthorized, "Отсутствует access token")
				return
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if tokenString == "" || secret == "" {
				log.Warn("JWTAuth: пустой токен или не задан JWT_SECRET")
				helpers.Error(w, http.StatusUnauthorized, "Неверный или просроченный токен")
				return
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

			if err != nil || !token.Valid {
				log.Warn("JWTAuth: неверный или просроченный токен", zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "Неверный или просроченный токен")
				return
			}

			if tt, ok := claims["token_type"].(string); ok && tt != "access" {
				log.Warn("JWTAuth: токен не access", zap.String("token_type", tt))
				helpers.Error(w, http.StatusUnauthorized, "Неверный или просроченный токен")
				return
			}

			userID, ok1 := claims["user_id"].(float64)
			role, ok2 := claims["role"].(string)
			if !ok1 || !ok2 {
				log.Warn("JWTAuth: недопустимый payload", zap.Any("claims", claims))
				helpers.Error(w, http.StatusUnauthorized, "Недопустимый payload")
				return
			}

			ctx := reqctx.WithUserID(r.Context(), int(userID))
			ctx = reqctx.WithRole(ctx, role)

			logger.WithCtx(ctx).Debug("JWTAuth: токен валиден", zap.String("role", role))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
