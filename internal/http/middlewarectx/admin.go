package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
)

// RequireAdmin пропускает только администраторов, остальных перенаправляет на главную.
// Должен стоять после AccessGate.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAdminFromContext(r.Context()) {
				log.Info("admin area requested by non-admin", sl.Email(EmailFromContext(r.Context())))
				http.Redirect(w, r, HomePath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
