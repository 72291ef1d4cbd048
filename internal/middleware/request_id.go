package middleware

import (
	"net/http"

	"newsadmin/internal/reqctx"

	"github.com/google/uuid"
)

const headerRequestID = "X-Request-Id"

// RequestID берёт X-Request-Id клиента или генерирует новый и отдаёт его в ответе.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)

		next.ServeHTTP(w, r.WithContext(reqctx.WithRequestID(r.Context(), id)))
	})
}
