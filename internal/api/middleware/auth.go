package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/smilehub/clinic-booking/internal/api/handlers"
	"github.com/smilehub/clinic-booking/internal/auth"
)

type contextKey string

const (
	identityKey contextKey = "operatorIdentity"

	// AccessTokenParam query параметр токена для WebSocket, где браузер не может передать заголовок
	AccessTokenParam = "access_token"

	msgUnauthorized = "authentication required"
	msgForbidden    = "access denied: not an authorized operator"
)

// OperatorAuth пропускает запросы с валидным токеном оператора.
// Нет токена или токен невалиден - 401, email не в списке операторов - 403
func OperatorAuth(authorizer Authorizer, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := authorizer.Authorize(tokenFromRequest(r))
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrNotOperator):
					logger.Warn("%s %s - operator access denied: %v", r.Method, r.URL.Path, err)
					handlers.RespondForbidden(w, msgForbidden)
				default:
					logger.Warn("%s %s - unauthorized: %v", r.Method, r.URL.Path, err)
					handlers.RespondUnauthorized(w, msgUnauthorized)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// WithIdentity кладет оператора в контекст запроса
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext возвращает оператора, прошедшего OperatorAuth
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*auth.Identity)
	return identity, ok && identity != nil
}

// OperatorEmail email оператора для журнала действий, "anonymous" вне OperatorAuth
func OperatorEmail(ctx context.Context) string {
	if identity, ok := IdentityFromContext(ctx); ok {
		return identity.Email
	}
	return "anonymous"
}

func tokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return r.URL.Query().Get(AccessTokenParam)
}
