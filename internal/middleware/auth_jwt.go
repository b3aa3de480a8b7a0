package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"markova/internal/domain"
	"markova/internal/i18n"
	"markova/internal/session"
)

// TokenClaims are the fields read from the auth provider's session token.
type TokenClaims struct {
	Sub      string `json:"sub"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	Locale   string `json:"locale,omitempty"`
	Exp      int64  `json:"exp"`
	Issuer   string `json:"iss,omitempty"`
	Audience string `json:"aud,omitempty"`
}

var (
	errMalformedToken = errors.New("invalid token")
	errBadSignature   = errors.New("invalid signature")
	errTokenExpired   = errors.New("token expired")
)

// SignJWT issues an HS256 token. The API only verifies tokens; signing is
// used by tests and local tooling.
func SignJWT(secret string, claims TokenClaims) (string, error) {
	headerJSON, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		return "", err
	}
	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	data := base64.RawURLEncoding.EncodeToString(headerJSON) + "." + base64.RawURLEncoding.EncodeToString(payloadJSON)
	return data + "." + hmacSign(secret, data), nil
}

func hmacSign(secret, data string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// VerifyJWT checks the HS256 signature and expiry of token.
func VerifyJWT(secret, token string) (*TokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errMalformedToken
	}
	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, errMalformedToken
	}
	var header struct {
		Alg string `json:"alg"`
	}
	if err := json.Unmarshal(headerJSON, &header); err != nil || header.Alg != "HS256" {
		return nil, errMalformedToken
	}
	expected := hmacSign(secret, parts[0]+"."+parts[1])
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return nil, errBadSignature
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errMalformedToken
	}
	var claims TokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, errMalformedToken
	}
	if claims.Sub == "" {
		return nil, errMalformedToken
	}
	if claims.Exp != 0 && time.Now().Unix() > claims.Exp {
		return nil, errTokenExpired
	}
	return &claims, nil
}

// AuthJWT requires a valid bearer token and stores the caller session. An
// explicit X-Locale header wins over the locale carried in the token.
func AuthJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				writeError(w, r, http.StatusUnauthorized, i18n.MsgUnauthorized)
				return
			}
			claims, err := VerifyJWT(secret, strings.TrimSpace(token))
			if err != nil {
				writeError(w, r, http.StatusUnauthorized, i18n.MsgUnauthorized)
				return
			}

			locale := LocaleFromContext(r.Context())
			if r.Header.Get("X-Locale") == "" {
				if l, ok := i18n.Match(claims.Locale); ok {
					locale = l
				}
			}
			role := domain.UserRoleUser
			if claims.Role == string(domain.UserRoleAdmin) {
				role = domain.UserRoleAdmin
			}
			ctx := WithLocale(r.Context(), locale)
			ctx = session.With(ctx, session.Session{
				UserID: claims.Sub,
				Email:  claims.Email,
				Role:   role,
				Locale: locale,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleLookup returns the stored role of a user.
type RoleLookup func(ctx context.Context, userID string) (domain.UserRole, error)

// RequireAdmin admits sessions whose token or stored record carries the admin
// role. lookup may be nil, in which case only the token is consulted.
func RequireAdmin(lookup RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := session.From(r.Context())
			if !ok {
				writeError(w, r, http.StatusUnauthorized, i18n.MsgUnauthorized)
				return
			}
			if !s.IsAdmin() && lookup != nil {
				if role, err := lookup(r.Context(), s.UserID); err == nil && role == domain.UserRoleAdmin {
					s.Role = role
					r = r.WithContext(session.With(r.Context(), s))
				}
			}
			if !s.IsAdmin() {
				writeError(w, r, http.StatusForbidden, i18n.MsgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
