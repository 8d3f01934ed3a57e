package auth

import "github.com/golang-jwt/jwt/v5"

// Claims claims токена оператора
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity аутентифицированный пользователь
type Identity struct {
	Email string
}
