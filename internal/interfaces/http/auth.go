package httpinterface

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt"
)

var (
	// ErrMissingWebhookToken ...
	ErrMissingWebhookToken = errors.New("missing webhook bearer token")
	// ErrInvalidWebhookToken ...
	ErrInvalidWebhookToken = errors.New("invalid webhook bearer token")
)

// verifyWebhookToken checks the HS256 signed JWT the write database attaches
// to its webhook calls against the shared secret.
func verifyWebhookToken(req *http.Request, secret string) error {
	auth := req.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ErrMissingWebhookToken
	}
	tokenString := strings.TrimPrefix(auth, "Bearer ")

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidWebhookToken
	}
	return nil
}
