package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/base/delivery"
	"github.com/agritrade/goapi/domain"
)

type authHandler struct {
	auth domain.AuthUsecase
}

func New(e *echo.Echo, auth domain.AuthUsecase) {
	handler := &authHandler{
		auth: auth,
	}
	g := e.Group("/auth")
	g.POST("/login", handler.login)
}

func (h *authHandler) login(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		UserId string `json:"userId" validate:"required"`
		Role   string `json:"role" validate:"required"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if tkn, err := h.auth.SignToken(ctx, domain.UserId(p.UserId), domain.Role(p.Role)); err != nil {
		ctx.WithField("err", err).Error("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
	}
}
