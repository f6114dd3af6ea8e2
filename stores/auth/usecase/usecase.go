package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/domain"
)

type impl struct {
	jwtSecret []byte
	tokenTtl  time.Duration
}

func New(jwtSecret string, tokenTtl time.Duration) domain.AuthUsecase {
	return &impl{
		jwtSecret: []byte(jwtSecret),
		tokenTtl:  tokenTtl,
	}
}

func (im *impl) SignToken(ctx ctx.Ctx, userId domain.UserId, role domain.Role) (string, error) {
	if userId.IsEmpty() || !role.IsValid() {
		return "", domain.ErrBadParamInput
	}

	claims := domain.JwtCustomClaims{
		UserId: string(userId),
		Role:   string(role),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(im.tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, domain.Role, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.UserId, domain.Role(claims.Role), nil
	}

	return "", "", domain.ErrInvalidToken
}
