package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

type TokensDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims is the verified identity decoded from a bearer token.
type Claims struct {
	UserID int64
	Role   string
	Kind   string
}

func (s *AuthService) secretFor(kind string) []byte {
	if kind == TokenKindRefresh {
		return []byte(s.cfg.RefreshTokenSecret)
	}
	return []byte(s.cfg.AccessTokenSecret)
}

func (s *AuthService) issueToken(userID int64, role string, kind string) (string, error) {
	ttl := s.cfg.AccessTokenTTL
	if kind == TokenKindRefresh {
		ttl = s.cfg.RefreshTokenTTL
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"type": kind,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
	return token.SignedString(s.secretFor(kind))
}

// IssueTokenPair signs an access and a refresh token for the identity. Each
// kind is signed with its own secret, so a refresh token can never pass
// verification as an access token even with the type claim stripped.
func (s *AuthService) IssueTokenPair(userID int64, role string) (*TokensDTO, error) {
	access, err := s.issueToken(userID, role, TokenKindAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issueToken(userID, role, TokenKindRefresh)
	if err != nil {
		return nil, err
	}
	return &TokensDTO{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseBasicCredentials splits an "Authorization: Basic base64(email:password)"
// header into its email and password. Every shape violation is reported as
// ErrMalformedCredential.
func ParseBasicCredentials(header string) (email, password string, err error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "basic") {
		return "", "", ErrMalformedCredential
	}
	decoded, decodeErr := base64Decode(parts[1])
	if decodeErr != nil {
		return "", "", ErrMalformedCredential
	}
	credentials := strings.Split(decoded, ":")
	if len(credentials) != 2 {
		return "", "", ErrMalformedCredential
	}
	return credentials[0], credentials[1], nil
}

// VerifyBearerToken checks an "Authorization: Bearer <token>" header against
// the secret of the expected token kind. Header-shape problems come back as
// ErrMalformedCredential, a valid signature with a passed expiry as
// ErrExpiredCredential and everything else as ErrInvalidCredential.
func (s *AuthService) VerifyBearerToken(header string, expectedKind string) (*Claims, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, ErrMalformedCredential
	}
	token, err := jwt.Parse(
		parts[1],
		func(t *jwt.Token) (any, error) { return s.secretFor(expectedKind), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidCredential
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredCredential
		default:
			return nil, ErrInvalidCredential
		}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidCredential
	}
	kind, _ := claims["type"].(string)
	if kind != expectedKind {
		return nil, ErrInvalidCredential
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, ErrInvalidCredential
	}
	role, _ := claims["role"].(string)
	return &Claims{UserID: int64(sub), Role: role, Kind: kind}, nil
}
