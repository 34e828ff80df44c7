package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/rs/zerolog/log"
)

type ctxKey string

const ctxSessionIDKey ctxKey = "sessionID"

const tokenTTL = 24 * time.Hour

var errInvalidToken = errors.New("invalid token")

// JWTClaims custom claims with session id
type JWTClaims struct {
	Session *string `json:"session"`
	jwt.StandardClaims
}

// authService signs and checks session tokens
type authService struct {
	jwtSecret []byte
}

// createToken creates JWT token for the session
func (s *authService) createToken(sessionID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		Session: &sessionID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().UTC().Add(tokenTTL).Unix(),
			NotBefore: time.Now().UTC().Unix(),
		},
	})
	tokenStr, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return tokenStr, nil
}

// parseToken returns session id from a valid token
func (s *authService) parseToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || claims.Session == nil {
		return "", errInvalidToken
	}
	now := time.Now().Unix()
	if claims.NotBefore > now || claims.ExpiresAt < now {
		return "", errInvalidToken
	}
	return *claims.Session, nil
}

// SessionCtx checks authorization token and adds session id to context
func (s *authService) SessionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestToken := r.Header.Get("Authorization")
		if !strings.HasPrefix(requestToken, "Bearer ") {
			writeText(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		sessionID, err := s.parseToken(strings.TrimPrefix(requestToken, "Bearer "))
		if err != nil {
			log.Debug().Err(err).Msg("rejected session token")
			writeText(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.WriteHeader(status)
	if _, err := w.Write([]byte(text)); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
