package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/agritrade/goapi/base/ctx"
)

type JwtCustomClaims struct {
	UserId string `json:"data"` // name data for backward compatibility
	Role   string `json:"role"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, userId UserId, role Role) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (userId string, role Role, err error)
}
