package jwt

import (
	"errors"
	"fmt"
	"time"

	"bloodbank/domain"

	"github.com/golang-jwt/jwt/v4"
)

const DefaultTokenTTL = 120 * time.Minute

type (
	JWTService interface {
		GenerateTokenUser(userID string, role string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetPrincipalByToken(token string) (domain.Principal, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
		now       func() time.Time
	}
)

func NewJWTService(secretKey string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    "BLOODBANK",
		ttl:       DefaultTokenTTL,
		now:       time.Now,
	}
}

func (j *jwtService) GenerateTokenUser(userID string, role string) (string, error) {
	now := j.now()
	claims := jwtUserClaim{
		userID,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetPrincipalByToken(token string) (domain.Principal, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, domain.ErrTokenExpired
		}
		return domain.Principal{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return domain.Principal{}, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtUserClaim)
	if !ok || claims.Issuer != j.issuer {
		return domain.Principal{}, domain.ErrTokenInvalid
	}

	principal := domain.Principal{UserID: claims.UserID, Role: claims.Role}
	if !principal.Authenticated() {
		return domain.Principal{}, domain.ErrTokenInvalid
	}
	return principal, nil
}
