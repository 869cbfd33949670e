package jwt

// SigningMethod names the HMAC algorithm a Processor signs with.
// The core engine accepts any Signer; the processor facade keeps the
// symmetric SHA-2 family.
type SigningMethod string

const (
	// SigningMethodHS256 uses HMAC with SHA-256 (recommended for most use cases)
	SigningMethodHS256 SigningMethod = "HS256"

	// SigningMethodHS384 uses HMAC with SHA-384 (higher security, larger signatures)
	SigningMethodHS384 SigningMethod = "HS384"

	// SigningMethodHS512 uses HMAC with SHA-512 (maximum security, largest signatures)
	SigningMethodHS512 SigningMethod = "HS512"
)

// RegisteredClaims represents the registered JWT claims as defined in
// RFC 7519. These are standard claims with specific meanings.
type RegisteredClaims struct {
	Issuer    string      `json:"iss,omitempty"` // Token issuer
	Subject   string      `json:"sub,omitempty"` // Token subject
	Audience  []string    `json:"aud,omitempty"` // Token audience
	ExpiresAt NumericDate `json:"exp"`           // Expiration time
	NotBefore NumericDate `json:"nbf"`           // Not valid before time
	IssuedAt  NumericDate `json:"iat"`           // Issued at time
	ID        string      `json:"jti,omitempty"` // Unique token identifier
}

// Claims represents processor-issued claims with custom fields for
// application-specific data.
type Claims struct {
	UserID      string         `json:"user_id,omitempty"`     // Unique user identifier
	Username    string         `json:"username,omitempty"`    // Human-readable username
	Role        string         `json:"role,omitempty"`        // User role (e.g., "admin", "user")
	Permissions []string       `json:"permissions,omitempty"` // List of permissions
	Scopes      []string       `json:"scopes,omitempty"`      // OAuth2-style scopes
	Extra       map[string]any `json:"extra,omitempty"`       // Additional custom claims
	RegisteredClaims
}
