package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tracking/internal/core/application/tracking"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const requesterKey = "requester"

var ErrInvalidToken = errors.New("invalid token")

// Claims is the bearer token payload. Subject is the account id; EnterpriseID
// is present only on tokens issued to enterprise operators.
type Claims struct {
	EnterpriseID string `json:"enterprise_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier validates HS256 bearer tokens.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Issue signs a token for the given account and optional enterprise.
func (v *TokenVerifier) Issue(accountID, enterpriseID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		EnterpriseID: enterpriseID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Verify parses the token and checks its signature and expiry.
func (v *TokenVerifier) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Authenticate rejects requests without a valid bearer token and stores the
// caller as a tracking.Requester on the echo context.
func Authenticate(verifier *TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return ctx.JSON(http.StatusUnauthorized, errorBody(http.StatusUnauthorized, "", "authorization header required"))
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, errorBody(http.StatusUnauthorized, "", "invalid or expired token"))
			}

			ctx.Set(requesterKey, tracking.Requester{
				AccountID:    claims.Subject,
				EnterpriseID: claims.EnterpriseID,
			})
			return next(ctx)
		}
	}
}

func requesterFrom(ctx echo.Context) tracking.Requester {
	requester, _ := ctx.Get(requesterKey).(tracking.Requester)
	return requester
}
