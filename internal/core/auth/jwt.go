package auth

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

// Claims 平台签发的管理端令牌
type Claims struct {
	UID         string   `json:"uid"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// Allows admin 角色放行一切；否则需持有 perm
func (c *Claims) Allows(perm string) bool {
	if perm == "" || c.Role == RoleAdmin {
		return true
	}
	return slices.Contains(c.Permissions, perm)
}

type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Issue 仅用于本地联调和测试，生产令牌由平台签发
func (j *JWTer) Issue(uid, role string, perms ...string) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:         uid,
		Role:        role,
		Permissions: perms,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// ErrInvalidToken 签名、签发方、过期等任何校验失败都归为此错误
var ErrInvalidToken = errors.New("invalid token")

const clockSkew = time.Minute

func (j *JWTer) parser() *jwt.Parser {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(clockSkew),
		jwt.WithExpirationRequired(),
	}
	if j.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.Issuer))
	}
	return jwt.NewParser(opts...)
}

func (j *JWTer) Parse(raw string) (*Claims, error) {
	var c Claims
	_, err := j.parser().ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return j.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.UID == "" {
		return nil, fmt.Errorf("%w: missing uid", ErrInvalidToken)
	}
	return &c, nil
}
