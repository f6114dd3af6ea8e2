package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/base/delivery"
	"github.com/agritrade/goapi/domain"
)

type AuthMiddleware struct {
	auth domain.AuthUsecase
}

func New(auth domain.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateAuthToken)
}

func (m *AuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper: func(c echo.Context) bool {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			return len(auth) == 0
		},
		Validator: m.validateAuthToken,
	})
}

func (m *AuthMiddleware) HasRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Get("role").(domain.Role)

			if got == role || got == domain.RoleAdmin {
				return next(c)
			}

			return delivery.MakeJsonResp(c, http.StatusMethodNotAllowed, "require "+string(role)+" privilege")
		}
	}
}

func (m *AuthMiddleware) IsAdmin() echo.MiddlewareFunc {
	return m.HasRole(domain.RoleAdmin)
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId, role, err := m.auth.ParseToken(ctx, key)
	if err != nil {
		ctx.WithField("err", err).Error("auth.ParseToken failed")
		return false, err
	}
	c.Set("userId", domain.UserId(userId))
	c.Set("role", role)
	return true, nil
}
