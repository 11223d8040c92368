package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Claims is the token payload issued by the user service.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

var errMissingUserID = errors.New("user_id claim is missing")

// ParseToken verifies an HS256 token and returns the caller it names.
func ParseToken(tokenString, secret string) (domain.Caller, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Caller{}, err
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return domain.Caller{}, errMissingUserID
	}
	return domain.Caller{UserID: claims.UserID, Email: claims.Email}, nil
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// JWTAuth rejects requests without a valid bearer token and stores the caller
// in the request context.
func JWTAuth(secret string, log *logger.Logger, onReject func(w http.ResponseWriter, r *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Debug("Missing or malformed authorization header", zap.String("path", r.URL.Path))
				onReject(w, r)
				return
			}
			caller, err := ParseToken(token, secret)
			if err != nil {
				log.Warn("Rejected bearer token", zap.String("path", r.URL.Path), zap.Error(err))
				onReject(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}
