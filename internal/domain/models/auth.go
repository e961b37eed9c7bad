package models

import "github.com/golang-jwt/jwt/v5"

// Roles assigned to members of an escritório. Stored in the Supabase
// app_metadata block so clients cannot self-assign them.
const (
	RoleAdmin      = "admin"
	RoleAdvogado   = "advogado"
	RoleSecretaria = "secretaria"
)

// SupabaseClaims represents the JWT claims structure from Supabase Auth.
// See: https://supabase.com/docs/guides/auth/jwts
type SupabaseClaims struct {
	jwt.RegisteredClaims                        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string                 `json:"email"`
	AppMetadata          map[string]interface{} `json:"app_metadata"`
	UserMetadata         map[string]interface{} `json:"user_metadata"`
	Role                 string                 `json:"role"` // "authenticated" or "anon"
	SessionID            string                 `json:"session_id"`
	IsAnonymous          bool                   `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *SupabaseClaims) GetUserID() string {
	return c.Subject
}

// GetEscritorioID returns the tenant (law office) id from app_metadata.
// Empty string means the token was minted without a tenant and must be
// rejected by the auth middleware.
func (c *SupabaseClaims) GetEscritorioID() string {
	id, _ := c.AppMetadata["escritorio_id"].(string)
	return id
}

// GetPapel returns the office role (admin/advogado/secretaria) from
// app_metadata. Distinct from the Supabase "role" claim, which only
// distinguishes authenticated from anonymous sessions.
func (c *SupabaseClaims) GetPapel() string {
	papel, _ := c.AppMetadata["papel"].(string)
	return papel
}

// Identity is the authenticated caller as carried through every
// orchestration step. Every repository lookup re-checks EscritorioID;
// an object's own foreign keys are never trusted on their own.
type Identity struct {
	UserID       string
	EscritorioID string
	Papel        string
}

// CanReview reports whether the caller may approve or reject pieces.
func (i Identity) CanReview() bool {
	return i.Papel == RoleAdmin || i.Papel == RoleAdvogado
}
