package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mlegeay/examslots/internal/api/handlers"
)

type ctxKey int

const (
	candidatIDKey ctxKey = iota
	adminEmailKey
)

// Заголовки аутентификации, проставляемые вышестоящим шлюзом.
// Сервис доверяет им и не проверяет подписи
const (
	HeaderCandidatID = "X-Candidat-ID"
	HeaderAdminEmail = "X-Admin-Email"
)

// Auth требует валидный заголовок X-Candidat-ID на кандидатских маршрутах
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderCandidatID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "candidat non identifié")
			return
		}

		candidatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || candidatID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "identifiant candidat invalide")
			return
		}

		ctx := context.WithValue(r.Context(), candidatIDKey, candidatID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminAuth требует заголовок X-Admin-Email на административных маршрутах
func AdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := r.Header.Get(HeaderAdminEmail)
		if email == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "administrateur non identifié")
			return
		}

		ctx := context.WithValue(r.Context(), adminEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CandidatID возвращает ID кандидата из контекста запроса
func CandidatID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(candidatIDKey).(int64)
	return id, ok
}

// AdminEmail возвращает email администратора из контекста запроса
func AdminEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(adminEmailKey).(string)
	return email, ok
}
