package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 12 * time.Hour

// Authenticator проверяет HMAC JWT и список операторов
type Authenticator struct {
	secret    []byte
	issuer    string
	ttl       time.Duration
	operators map[string]struct{}
	now       func() time.Time
}

// NewAuthenticator создает аутентификатор. Email операторов сравниваются без учета регистра
func NewAuthenticator(secret, issuer string, operatorEmails []string, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	operators := make(map[string]struct{}, len(operatorEmails))
	for _, email := range operatorEmails {
		if e := normalizeEmail(email); e != "" {
			operators[e] = struct{}{}
		}
	}

	return &Authenticator{
		secret:    []byte(secret),
		issuer:    issuer,
		ttl:       ttl,
		operators: operators,
		now:       time.Now,
	}
}

// Verify проверяет подпись и срок действия токена и возвращает identity
func (a *Authenticator) Verify(tokenString string) (*Identity, error) {
	if len(a.secret) == 0 {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if normalizeEmail(claims.Email) == "" {
		return nil, fmt.Errorf("%w: email claim is empty", ErrInvalidToken)
	}

	return &Identity{Email: claims.Email}, nil
}

// IsAuthorizedOperator проверяет email по списку операторов
func (a *Authenticator) IsAuthorizedOperator(identity *Identity) bool {
	if identity == nil {
		return false
	}
	_, ok := a.operators[normalizeEmail(identity.Email)]
	return ok
}

// Authorize Verify + IsAuthorizedOperator
func (a *Authenticator) Authorize(tokenString string) (*Identity, error) {
	identity, err := a.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if !a.IsAuthorizedOperator(identity) {
		return identity, fmt.Errorf("%w: %s", ErrNotOperator, identity.Email)
	}
	return identity, nil
}

// Issue выпускает токен для email
func (a *Authenticator) Issue(email string) (string, error) {
	if len(a.secret) == 0 {
		return "", ErrNotConfigured
	}

	now := a.now()
	claims := Claims{
		Email: strings.TrimSpace(email),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.issuer,
			Subject:   strings.TrimSpace(email),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
