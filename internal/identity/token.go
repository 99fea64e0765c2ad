package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	identityerrors "go-staffhub/internal/identity/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims mirrors the session token minted by the identity provider.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func ParseToken(secret, tokenString string) (Actor, error) {
	if strings.TrimSpace(tokenString) == "" {
		return Actor{}, identityerrors.ErrTokenNotFound
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Actor{}, identityerrors.ErrTokenExpired
		}
		return Actor{}, identityerrors.ErrInvalidToken
	}
	if !token.Valid {
		return Actor{}, identityerrors.ErrInvalidToken
	}

	userID := strings.TrimSpace(claims.UserID)
	if userID == "" {
		return Actor{}, identityerrors.ErrMissingUserID
	}
	if parsed, err := uuid.Parse(userID); err == nil {
		userID = parsed.String()
	}

	return Actor{ID: userID, Role: strings.TrimSpace(claims.Role)}, nil
}

// IssueToken signs a session token. Only the dev token command uses it.
func IssueToken(secret string, a Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: a.ID,
		Role:   a.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
