package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid JWT token")
	ErrExpiredToken = errors.New("expired JWT token")
)

// Claims are the identity claims carried by an access token.
type Claims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	gojwt.RegisteredClaims
}

// UserID returns the numeric id stored in the subject claim.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

type JWTService struct {
	secret   []byte
	ttl      time.Duration
	leeway   time.Duration
	timeFunc func() time.Time
}

// NewJWTService creates a token service signing with HMAC-SHA256.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{
		secret:   []byte(secret),
		ttl:      ttl,
		leeway:   30 * time.Second,
		timeFunc: time.Now,
	}
}

// GenerateToken signs a token scoped to the user's identity and roles.
func (s *JWTService) GenerateToken(userID int64, email string, roles []string) (string, error) {
	now := s.timeFunc()
	claims := Claims{
		Username: email,
		Roles:    roles,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// ValidateToken checks the signature and lifetime of a token and returns its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims,
		func(token *gojwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*gojwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Name}),
		gojwt.WithLeeway(s.leeway),
		gojwt.WithTimeFunc(s.timeFunc),
	)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return claims, nil
}
