package siteapi

import (
	"log/slog"
	"net/http"
)

// Заголовок проставляется фронтом аутентификации (Easy Auth) на краю.
// Содержимое не разбираем: достаточно самого факта присутствия.
const principalHeader = "X-MS-CLIENT-PRINCIPAL"

func requirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(principalHeader) == "" {
			slog.Warn("unauthenticated staff request rejected", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
