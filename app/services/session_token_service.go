package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/alfurqan/academy-admin/utils"
)

// Session token error constants
var (
	ErrSessionTokenExpired = errors.New("session token has expired")
	ErrSessionTokenInvalid = errors.New("invalid session token")
)

// SessionTokenService issues and validates the signed tokens that tie a
// browser tab to its dashboard workspace. The token carries only the
// workspace ID; it is session correlation, not authentication.
type SessionTokenService interface {
	IssueToken(workspaceID string) (string, error)
	ValidateToken(token string) (*SessionClaims, error)
}

// SessionClaims are the claims carried by a workspace session token.
type SessionClaims struct {
	WorkspaceID string `json:"workspace_id"`
	jwt.RegisteredClaims
}

// SessionTokenServiceImpl implements SessionTokenService with HS256.
type SessionTokenServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
}

// NewSessionTokenService creates a session token service.
func NewSessionTokenService(secretKey string, ttl time.Duration, issuer string) (SessionTokenService, error) {
	if secretKey == "" {
		return nil, errors.New("session token secret key is required")
	}
	if ttl <= 0 {
		ttl = utils.SessionTokenTTL
	}
	return &SessionTokenServiceImpl{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		issuer:    issuer,
	}, nil
}

// IssueToken signs a token for the given workspace ID.
func (s *SessionTokenServiceImpl) IssueToken(workspaceID string) (string, error) {
	now := utils.UTCNow()
	claims := SessionClaims{
		WorkspaceID: workspaceID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *SessionTokenServiceImpl) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionTokenExpired
		}
		return nil, ErrSessionTokenInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.WorkspaceID == "" {
		return nil, ErrSessionTokenInvalid
	}
	return claims, nil
}
