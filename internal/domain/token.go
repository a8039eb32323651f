package domain

// TokenType discriminates the two halves of a session token pair
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Identity is the set of user attributes embedded in every session token
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	IsActivated bool   `json:"isActivated"`
}

// IdentityOf extracts the token identity of a user
func IdentityOf(u *User) Identity {
	return Identity{
		ID:          u.ID,
		Email:       u.Email,
		IsActivated: u.IsActivated,
	}
}

// TokenClaims are the verified contents of a session token
type TokenClaims struct {
	Identity
	Type    TokenType `json:"type"`
	TokenID string    `json:"jti"`
}

// TokenPair represents a pair of access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
