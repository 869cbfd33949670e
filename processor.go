package jwt

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/signcore/jwt/internal/revocation"
	"github.com/signcore/jwt/internal/security"
)

// Processor is a high-level issue/validate facade over the token
// engine: HMAC signing keyed by a shared secret, registered-claim
// defaulting, temporal and issuer checks, and revocation tracking.
type Processor struct {
	secretKey       *security.SecureBytes
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	issuer          string
	signingMethod   SigningMethod
	revocations     *revocation.Manager

	mu     sync.RWMutex
	closed bool
}

// New creates a Processor with secretKey and optional configuration.
// The secret must be at least 32 bytes with sufficient entropy.
func New(secretKey string, config ...Config) (*Processor, error) {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	} else {
		cfg = DefaultConfig()
	}

	cfg.SecretKey = secretKey
	if cfg.SigningMethod == "" {
		cfg.SigningMethod = SigningMethodHS256
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "jwt-service"
	}
	if cfg.Revocation.StoreType == "" {
		cfg.Revocation.StoreType = RevocationStoreMemory
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	var store revocation.Store
	switch cfg.Revocation.StoreType {
	case RevocationStoreRedis:
		store = revocation.NewRedisStore(cfg.Revocation.RedisClient)
	default:
		store = revocation.NewMemoryStore(cfg.Revocation.MaxSize)
	}

	manager := revocation.NewManager(store, revocation.Config{
		CleanupInterval:   cfg.Revocation.CleanupInterval,
		MaxSize:           cfg.Revocation.MaxSize,
		EnableAutoCleanup: cfg.Revocation.EnableAutoCleanup,
	})

	return &Processor{
		secretKey:       security.NewSecureBytes([]byte(cfg.SecretKey)),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		issuer:          cfg.Issuer,
		signingMethod:   cfg.SigningMethod,
		revocations:     manager,
	}, nil
}

// signer builds the configured HMAC signer. Caller holds p.mu.
func (p *Processor) signer() Signer {
	switch p.signingMethod {
	case SigningMethodHS384:
		return NewHS384(p.secretKey.Bytes())
	case SigningMethodHS512:
		return NewHS512(p.secretKey.Bytes())
	default:
		return NewHS256(p.secretKey.Bytes())
	}
}

// IssueToken issues a signed access token for the given claims.
func (p *Processor) IssueToken(claims Claims) (string, error) {
	return p.IssueTokenWithContext(context.Background(), claims)
}

// IssueTokenWithContext issues a signed access token with context support.
func (p *Processor) IssueTokenWithContext(ctx context.Context, claims Claims) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return "", ErrProcessorClosed
	}
	return p.issueLocked(claims, p.accessTokenTTL)
}

// IssueRefreshToken issues a token with the longer refresh TTL.
func (p *Processor) IssueRefreshToken(claims Claims) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return "", ErrProcessorClosed
	}
	return p.issueLocked(claims, p.refreshTokenTTL)
}

// issueLocked fills registered-claim defaults, signs, and serializes.
// Caller holds p.mu.
func (p *Processor) issueLocked(claims Claims, ttl time.Duration) (string, error) {
	if err := validateClaims(&claims); err != nil {
		return "", fmt.Errorf("invalid claims data: %w", err)
	}

	now := time.Now()
	if claims.IssuedAt.IsZero() {
		claims.IssuedAt = NewNumericDate(now)
	}
	if claims.ExpiresAt.IsZero() {
		claims.ExpiresAt = NewNumericDate(now.Add(ttl))
	}
	if claims.Issuer == "" {
		claims.Issuer = p.issuer
	}
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}

	token, err := Sign(&claims, p.signer())
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token.String(), nil
}

// ValidateToken verifies a token's signature and temporal claims and
// returns the decoded claims. The boolean reports whether every claim
// check passed; revoked tokens fail with ErrTokenRevoked.
func (p *Processor) ValidateToken(tokenString string) (*Claims, bool, error) {
	return p.ValidateTokenWithContext(context.Background(), tokenString)
}

// ValidateTokenWithContext validates a token with context support.
func (p *Processor) ValidateTokenWithContext(ctx context.Context, tokenString string) (*Claims, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, false, ErrProcessorClosed
	}

	token, err := Parse(tokenString)
	if err != nil {
		return nil, false, err
	}

	// A verification failure is reported generically so callers leak
	// nothing about why a forged token was rejected.
	if err := token.VerifySignature(p.signer()); err != nil {
		return nil, false, ErrInvalidToken
	}

	var claims Claims
	if err := token.DecodePayload(&claims); err != nil {
		return nil, false, err
	}

	if claims.ID != "" {
		revoked, err := p.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, false, fmt.Errorf("revocation check failed: %w", err)
		}
		if revoked {
			return nil, false, ErrTokenRevoked
		}
	}

	now := time.Now()
	valid := token.VerifyClaims(
		NotExpired(now),
		NotBeforeReached(now),
		IssuedBy(p.issuer),
	)

	return &claims, valid, nil
}

// RefreshToken validates a refresh token and issues a fresh access
// token carrying the same application claims.
func (p *Processor) RefreshToken(refreshTokenString string) (string, error) {
	claims, valid, err := p.ValidateToken(refreshTokenString)
	if err != nil {
		return "", fmt.Errorf("invalid refresh token: %w", err)
	}
	if !valid {
		return "", fmt.Errorf("refresh token is not valid")
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return "", ErrProcessorClosed
	}

	fresh := *claims
	fresh.IssuedAt = NumericDate{}
	fresh.ExpiresAt = NumericDate{}
	fresh.ID = ""

	return p.issueLocked(fresh, p.accessTokenTTL)
}

// RevokeToken parses a token string and revokes it by its jti claim,
// keeping the entry until the token's own expiry.
func (p *Processor) RevokeToken(tokenString string) error {
	return p.RevokeTokenWithContext(context.Background(), tokenString)
}

// RevokeTokenWithContext revokes a token with context support.
func (p *Processor) RevokeTokenWithContext(ctx context.Context, tokenString string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrProcessorClosed
	}

	tokenID, expiresAt, err := revocationTarget(tokenString)
	if err != nil {
		return err
	}
	return p.revocations.Revoke(ctx, tokenID, expiresAt)
}

// RevokeTokenByID revokes a token ID directly until expiresAt.
func (p *Processor) RevokeTokenByID(tokenID string, expiresAt time.Time) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrProcessorClosed
	}
	return p.revocations.Revoke(context.Background(), tokenID, expiresAt)
}

// IsTokenRevoked reports whether the token's jti is revoked.
func (p *Processor) IsTokenRevoked(tokenString string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return false, ErrProcessorClosed
	}

	tokenID, _, err := revocationTarget(tokenString)
	if err != nil {
		return false, err
	}
	return p.revocations.IsRevoked(context.Background(), tokenID)
}

// revocationTarget extracts the jti and expiry from a token string
// without verifying it; revoking a token nobody signed is harmless.
func revocationTarget(tokenString string) (string, time.Time, error) {
	token, err := Parse(tokenString)
	if err != nil {
		return "", time.Time{}, err
	}

	var claims RegisteredClaims
	if err := token.DecodePayload(&claims); err != nil {
		return "", time.Time{}, err
	}
	if claims.ID == "" {
		return "", time.Time{}, ErrTokenMissingID
	}

	expiresAt := claims.ExpiresAt.Time
	if expiresAt.IsZero() {
		// No expiry on the token; keep the revocation for a day.
		expiresAt = time.Now().Add(24 * time.Hour)
	}
	return claims.ID, expiresAt, nil
}

// Close shuts down the processor and securely clears the secret key.
func (p *Processor) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrProcessorClosed
	}
	p.closed = true

	err := p.revocations.Close()
	p.secretKey.Destroy()
	return err
}

// IsClosed returns true if the processor has been closed.
func (p *Processor) IsClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}
