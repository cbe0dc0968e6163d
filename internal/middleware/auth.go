package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"anoa.com/fedipost/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AccessChecker decides whether a request may reach the API handlers.
type AccessChecker interface {
	CheckAccess(r *http.Request) error
}

// RequireAccess aborts the request unless checker allows it.
func RequireAccess(checker AccessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := checker.CheckAccess(c.Request); err != nil {
			c.AbortWithStatusJSON(apperror.MapErrorToStatus(err), gin.H{"error": apperror.PublicMessage(err)})
			return
		}
		c.Next()
	}
}

// JWTAccess accepts HMAC-signed bearer tokens.
type JWTAccess struct {
	secret []byte
}

func NewJWTAccess(secret string) *JWTAccess {
	return &JWTAccess{secret: []byte(secret)}
}

func (m *JWTAccess) CheckAccess(r *http.Request) error {
	tokenString := ""
	authHeader := r.Header.Get("Authorization")

	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}

	if tokenString == "" {
		return apperror.New(http.StatusUnauthorized, "authorization required", apperror.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return apperror.New(http.StatusUnauthorized, "invalid or expired token", errors.Join(apperror.ErrUnauthorized, err))
	}
	return nil
}
