package middleware

import (
	"net/http"

	"newsadmin/internal/loader"
)

// Loaders создаёт свежие загрузчики на каждый запрос: батчи и кэш не переживают запрос.
func Loaders(src loader.Source, opts loader.Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := loader.Into(r.Context(), loader.NewLoaders(src, opts))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
