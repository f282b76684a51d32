package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tpp-demo/internal/domain"
)

const consentIssuer = "tpp-demo-bank"

// DefaultConsentTTL matches the consent expiry shown on authorization screens.
const DefaultConsentTTL = 5 * 24 * time.Hour

type consentClaims struct {
	FlowID    string   `json:"flow_id"`
	UseCase   string   `json:"use_case"`
	Bank      string   `json:"bank"`
	Kind      string   `json:"kind"`
	Accounts  []string `json:"accounts"`
	Recurring bool     `json:"recurring,omitempty"`
	jwt.RegisteredClaims
}

// JWTConsentIssuer signs consents as HS256 JWTs.
type JWTConsentIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTConsentIssuer(secret []byte, ttl time.Duration, now func() time.Time) (*JWTConsentIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("consent: empty secret")
	}
	if ttl <= 0 {
		ttl = DefaultConsentTTL
	}
	if now == nil {
		now = time.Now
	}
	return &JWTConsentIssuer{secret: secret, ttl: ttl, now: now}, nil
}

func (i *JWTConsentIssuer) Issue(ctx context.Context, c domain.Consent) (string, error) {
	now := i.now()
	claims := consentClaims{
		FlowID:    c.FlowID,
		UseCase:   c.UseCase,
		Bank:      c.Bank,
		Kind:      string(c.Kind),
		Accounts:  c.Accounts,
		Recurring: c.Recurring,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        c.ID,
			Issuer:    consentIssuer,
			Subject:   c.FlowID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign consent: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and that the consent was granted
// for flowID.
func (i *JWTConsentIssuer) Verify(ctx context.Context, token, flowID string) (domain.Consent, error) {
	if token == "" {
		return domain.Consent{}, fmt.Errorf("%w: empty token", domain.ErrConsentInvalid)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(consentIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	claims := &consentClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil {
		return domain.Consent{}, fmt.Errorf("%w: %v", domain.ErrConsentInvalid, err)
	}
	if !parsed.Valid {
		return domain.Consent{}, domain.ErrConsentInvalid
	}
	if claims.FlowID != flowID {
		return domain.Consent{}, fmt.Errorf("%w: issued for flow %q", domain.ErrConsentInvalid, claims.FlowID)
	}

	return domain.Consent{
		ID:        claims.ID,
		FlowID:    claims.FlowID,
		UseCase:   claims.UseCase,
		Bank:      claims.Bank,
		Kind:      domain.ResultKind(claims.Kind),
		Accounts:  claims.Accounts,
		Recurring: claims.Recurring,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
