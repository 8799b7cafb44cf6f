// Package token issues and verifies the signed bearer tokens that carry a
// user identity between requests. Tokens are stateless: validity is a
// function of the signature and the embedded expiry only, there is no
// server-side session or revocation list. A jti claim is embedded so a
// denylist could be keyed on it later.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/palaver-dev/palaver/internal/domain"
	internal_errors "github.com/palaver-dev/palaver/internal/errors"
	"github.com/palaver-dev/palaver/internal/logger"
)

type Claims struct {
	Subject   domain.Username
	TokenId   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Service interface {
	Issue(user domain.User) (string, error)
	Verify(raw string) (Claims, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey: secretKey, ttl: ttl}
}

func (j *Jwt) Issue(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Username,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(j.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", errors.New("can't create token")
	}

	return tokenString, nil
}

// Verify checks the signature and expiry of raw and returns its claims.
// All failures surface as 401 with a stable message; the detailed cause
// goes to the log only.
func (j *Jwt) Verify(raw string) (Claims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		logger.Log.Debug("token verification failed", "error", err)
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, internal_errors.Authentication("Malformed token")
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, internal_errors.Authentication("Token expired")
		default:
			return Claims{}, internal_errors.Authentication("Invalid token signature")
		}
	}
	if !token.Valid {
		return Claims{}, internal_errors.Authentication("Invalid access token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, internal_errors.Authentication("Invalid access token")
	}

	subject, ok := mapClaims["sub"].(string)
	if !ok || subject == "" {
		return Claims{}, internal_errors.Authentication("Invalid access token")
	}

	claims := Claims{Subject: subject}
	if jti, ok := mapClaims["jti"].(string); ok {
		claims.TokenId = jti
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return claims, nil
}
