package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the fixed role marker carried in every signed admin claim.
const RoleAdmin = "admin"

// Claims is the decoded payload of a signed admin credential. It is never
// persisted; it is reconstructed from the token on each request.
type Claims struct {
	AdminID string `json:"admin_id"`
	Role    string `json:"role"`
	jwtlib.RegisteredClaims
}

// Signer signs and verifies time-limited admin claims with a shared secret.
// Construct one at startup and pass it in; there is no package-level state.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign mints a signed claim asserting adminID with the admin role marker.
func (s *Signer) Sign(adminID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		AdminID: adminID,
		Role:    RoleAdmin,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies a token string and returns the claims. Wrong algorithm,
// bad signature, expiry and missing admin id are all plain errors; callers
// treat them as "not this credential kind", never as a hard fault.
func (s *Signer) Parse(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.AdminID == "" || claims.Role != RoleAdmin {
		return nil, fmt.Errorf("not an admin claim")
	}
	return claims, nil
}
