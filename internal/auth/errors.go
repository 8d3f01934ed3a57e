package auth

import "errors"

var (
	// ErrMissingToken токен не передан
	ErrMissingToken = errors.New("auth: missing token")

	// ErrInvalidToken подпись, срок действия или claims токена некорректны
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrNotOperator email токена не входит в список операторов
	ErrNotOperator = errors.New("auth: not an operator")

	// ErrNotConfigured секрет подписи не задан
	ErrNotConfigured = errors.New("auth: jwt secret is not configured")
)
