package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domrepo "InvestAgent/internal/domain/repository"
)

// ErrTokenInvalid covers malformed, forged and expired tokens.
var ErrTokenInvalid = errors.New("token is invalid")

// TokenService issues and validates signed, self-contained bearer tokens.
// Tokens are stateless: there is no revocation before natural expiry.
type TokenService struct {
	secret  []byte
	ttl     time.Duration
	metrics domrepo.Metrics
	now     func() time.Time
}

// NewTokenService creates a token service with the given signing secret and
// default ttl (30 minutes when zero).
func NewTokenService(secret string, ttl time.Duration, metrics domrepo.Metrics) *TokenService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, metrics: metrics, now: time.Now}
}

// IssueToken signs a token for subject expiring after the default ttl.
func (t *TokenService) IssueToken(subject string) (string, error) {
	return t.IssueTokenTTL(subject, t.ttl)
}

// IssueTokenTTL signs a token for subject with an explicit ttl.
func (t *TokenService) IssueTokenTTL(subject string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", err
	}

	if t.metrics != nil {
		t.metrics.RecordTokenIssued()
	}
	return signed, nil
}

// VerifyToken validates signature and expiry and returns the token subject.
func (t *TokenService) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
