package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/base/delivery"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/bid"
	authMiddleware "github.com/agritrade/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	bid bid.Usecase
}

// New will initialize the bid endpoints
func New(e *echo.Echo, authMw *authMiddleware.AuthMiddleware, bid bid.Usecase) {
	h := &handler{
		bid: bid,
	}

	g := e.Group("/bids")
	g.POST("", h.placeBid, authMw.Auth(), authMw.HasRole(domain.RoleBuyer))
	g.GET("/product/:productId", h.listByProduct)
	g.GET("/product/:productId/highest", h.getHighest)
	g.GET("/bidder/:bidderId", h.listByBidder, authMw.Auth())
	g.GET("/seller/:sellerId", h.listBySeller, authMw.Auth())
	g.POST("/declare-winner", h.declareWinner, authMw.Auth(), authMw.HasRole(domain.RoleFarmer))
	g.GET("/winners/:sellerId", h.listWinners)
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	bidderId := c.Get("userId").(domain.UserId)

	type params struct {
		ProductId domain.ProductId `json:"productId" validate:"required"`
		Amount    int64            `json:"amount" validate:"required,gt=0"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	res, err := h.bid.PlaceBid(ctx, p.ProductId, bidderId, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) listByProduct(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	productId := domain.ProductId(c.Param("productId"))

	res, err := h.bid.ListByProduct(ctx, productId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getHighest(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	productId := domain.ProductId(c.Param("productId"))

	res, err := h.bid.GetHighestBid(ctx, productId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) listByBidder(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	bidderId := domain.UserId(c.Param("bidderId"))

	// bidders see their own history, admins see everyone's
	caller := c.Get("userId").(domain.UserId)
	role := c.Get("role").(domain.Role)
	if caller != bidderId && role != domain.RoleAdmin {
		return delivery.MakeJsonResp(c, http.StatusForbidden, domain.ErrNotOwner)
	}

	res, err := h.bid.ListByBidder(ctx, bidderId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) listBySeller(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	sellerId := domain.UserId(c.Param("sellerId"))

	caller := c.Get("userId").(domain.UserId)
	role := c.Get("role").(domain.Role)
	if caller != sellerId && role != domain.RoleAdmin {
		return delivery.MakeJsonResp(c, http.StatusForbidden, domain.ErrNotOwner)
	}

	res, err := h.bid.ListBySeller(ctx, sellerId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) declareWinner(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	sellerId := c.Get("userId").(domain.UserId)

	type params struct {
		ProductId domain.ProductId `json:"productId" validate:"required"`
		BidId     domain.BidId     `json:"bidId" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	res, err := h.bid.DeclareWinner(ctx, p.ProductId, sellerId, p.BidId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) listWinners(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	sellerId := domain.UserId(c.Param("sellerId"))

	res, err := h.bid.ListWinnersBySeller(ctx, sellerId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
