// Package middlewarectx содержит HTTP middleware сервиса: идентификацию клиента,
// проверку токена администратора, ограничение частоты запросов, доступ к премиум-функциям
// и сбор метрик.
//
// Значения, которые middleware кладут в контекст запроса, читаются через функции
// пакета (ClientID, Subject), а не напрямую по ключам.
package middlewarectx

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// ClientKey — ключ идентификатора клиента в контексте
	ClientKey Key = "client_id"
	// SubjectKey — ключ subject токена администратора в контексте
	SubjectKey Key = "subject"
	// RoleKey — ключ роли в контексте
	RoleKey Key = "role"
)

const (
	// ClientIDHeader заголовок, в котором фронтенд передаёт идентификатор клиента.
	ClientIDHeader = "X-Client-ID"
	// ClientIDCookie cookie с тем же идентификатором для запросов без заголовка.
	ClientIDCookie = "client_id"

	clientIDMaxAge = 365 * 24 * time.Hour
)

// ClientIDMiddleware определяет анонимного клиента по заголовку X-Client-ID или cookie client_id.
// Если идентификатора нет или он не является UUID, выдаётся новый: он возвращается
// в заголовке ответа и в cookie.
func ClientIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(ClientIDHeader)
		if id == "" {
			if c, err := r.Cookie(ClientIDCookie); err == nil {
				id = c.Value
			}
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     ClientIDCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(clientIDMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(ClientIDHeader, id)

		next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), id)))
	})
}

// WithClientID кладёт идентификатор клиента в контекст.
func WithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ClientKey, id)
}

// ClientID возвращает идентификатор клиента или пустую строку.
func ClientID(ctx context.Context) string {
	id, _ := ctx.Value(ClientKey).(string)
	return id
}

// Subject возвращает subject проверенного токена администратора.
func Subject(ctx context.Context) string {
	s, _ := ctx.Value(SubjectKey).(string)
	return s
}
