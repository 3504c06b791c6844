package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenCookie is where the identity provider's web client keeps the
// access token.
const AccessTokenCookie = "sb-access-token"

var (
	ErrInvalidToken   = errors.New("invalid access token")
	ErrMissingSubject = errors.New("access token has no subject")
)

type userMetadata struct {
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
}

type claims struct {
	Email        string       `json:"email"`
	UserMetadata userMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

// JWTProvider verifies HS256 access tokens issued by the identity provider.
type JWTProvider struct {
	secret []byte
	parser *jwt.Parser
}

func NewJWTProvider(secret, audience string) *JWTProvider {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	return &JWTProvider{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}
}

func (p *JWTProvider) CurrentIdentity(r *http.Request) (*Identity, error) {
	raw := tokenFromRequest(r)
	if raw == "" {
		return nil, nil
	}
	if len(p.secret) == 0 {
		return nil, ErrInvalidToken
	}

	var c claims
	token, err := p.parser.ParseWithClaims(raw, &c, func(*jwt.Token) (interface{}, error) {
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return nil, ErrMissingSubject
	}

	return &Identity{
		ID:            c.Subject,
		Email:         c.Email,
		Role:          c.UserMetadata.Role,
		EmailVerified: c.UserMetadata.EmailVerified,
	}, nil
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

var _ SessionProvider = (*JWTProvider)(nil)
