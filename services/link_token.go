package services

import (
	"fmt"

	"SocialStream/models"

	"github.com/golang-jwt/jwt/v5"
)

// LinkClaims is carried by the access token a simulated grant hands out.
// Tokens carry no expiry; a link lasts until the account is unlinked.
type LinkClaims struct {
	Platform models.Platform `json:"platform"`
	Handle   string          `json:"handle"`
	jwt.RegisteredClaims
}

// LinkTokenIssuer signs and checks access tokens for linked accounts.
type LinkTokenIssuer struct {
	secret []byte
	clock  Clock
}

func NewLinkTokenIssuer(secret []byte, clock Clock) *LinkTokenIssuer {
	return &LinkTokenIssuer{secret: secret, clock: clock}
}

func (i *LinkTokenIssuer) Issue(platform models.Platform, handle string) (string, error) {
	now := i.clock.Now()
	claims := LinkClaims{
		Platform: platform,
		Handle:   handle,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  handle,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Validate parses tokenString and checks that it was issued for platform.
func (i *LinkTokenIssuer) Validate(tokenString string, platform models.Platform) (*LinkClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &LinkClaims{}, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.clock.Now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*LinkClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Platform != platform {
		return nil, fmt.Errorf("token issued for %s, not %s", claims.Platform, platform)
	}
	return claims, nil
}
