package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/base/delivery"
	"github.com/agritrade/goapi/base/validator"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/payment"
	authMiddleware "github.com/agritrade/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	payment payment.Usecase
}

// New will initialize the payment endpoints
func New(e *echo.Echo, authMw *authMiddleware.AuthMiddleware, payment payment.Usecase) {
	h := &handler{
		payment: payment,
	}

	g := e.Group("/payments")
	g.POST("/fee", h.initiateFee, authMw.Auth(), authMw.HasRole(domain.RoleBuyer))
	g.GET("/fee/:reference", h.confirmFee, authMw.Auth())
	g.POST("/disburse", h.disburse, authMw.Auth(), authMw.IsAdmin())
}

func (h *handler) initiateFee(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	payerId := c.Get("userId").(domain.UserId)

	type params struct {
		ProductId   domain.ProductId `json:"productId" validate:"required"`
		PayerHandle string           `json:"payerHandle" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if !validator.IsValidMsisdn(p.PayerHandle) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	res, err := h.payment.InitiateFee(ctx, p.ProductId, payerId, p.PayerHandle)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) confirmFee(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	reference := domain.PaymentRef(c.Param("reference"))

	res, err := h.payment.ConfirmFee(ctx, reference)
	if err != nil && res == nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	if err != nil {
		// final or exhausted, the payment record still matters to the client
		return delivery.MakeJsonResp(c, http.StatusPaymentRequired, res)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) disburse(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		PayeeHandle string `json:"payeeHandle" validate:"required"`
		Amount      int64  `json:"amount" validate:"required,gt=0"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if !validator.IsValidMsisdn(p.PayeeHandle) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	ref, err := h.payment.Disburse(ctx, p.PayeeHandle, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, map[string]interface{}{"reference": ref})
}
