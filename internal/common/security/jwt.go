package security

import (
	"errors"
	"time"

	"career_advisor/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingKey means the signing secret was never configured. Requests
	// that need tokens fail closed with a configuration error; the process
	// itself keeps running.
	ErrMissingKey     = errors.New("jwt signing key is not configured")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

var TokenAuth *jwtauth.JWTAuth

var signingKey []byte

func InitJWT() {
	signingKey = config.AppConfig.JWTKey
	if len(signingKey) == 0 {
		TokenAuth = nil
		return
	}
	TokenAuth = jwtauth.New("HS256", signingKey, nil)
}

// GenerateToken issues a signed session token carrying the user's identity.
func GenerateToken(userID, email, fullName string) (string, error) {
	return GenerateTokenWithTTL(userID, email, fullName, config.AppConfig.JWTExp)
}

func GenerateTokenWithTTL(userID, email, fullName string, ttl time.Duration) (string, error) {
	if TokenAuth == nil || len(signingKey) == 0 {
		return "", ErrMissingKey
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       userID,
		"email":    email,
		"fullName": fullName,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// VerifyToken validates signature and expiry and returns the decoded claims.
func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingKey
	}
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// Helper functions to extract claims, used in middleware and services.
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["id"].(string)
	if !ok {
		return "", errors.New("id claim is missing or not a string")
	}
	return id, nil
}

func GetEmailFromClaims(claims jwt.MapClaims) (string, error) {
	email, ok := claims["email"].(string)
	if !ok {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}

func GetFullNameFromClaims(claims jwt.MapClaims) (string, error) {
	name, ok := claims["fullName"].(string)
	if !ok {
		return "", errors.New("fullName claim is missing or not a string")
	}
	return name, nil
}
