package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/base/delivery"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/product"
	"github.com/agritrade/goapi/middleware"
	authMiddleware "github.com/agritrade/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	product product.Usecase
}

// New will initialize the product endpoints
func New(e *echo.Echo, authMw *authMiddleware.AuthMiddleware, product product.Usecase) {
	h := &handler{
		product: product,
	}

	g := e.Group("/products")
	g.GET("", h.list, middleware.CacheHttp(30*time.Second))
	g.GET("/:productId", h.get)
	g.GET("/seller/:sellerId", h.listBySeller)
	g.POST("", h.create, authMw.Auth(), authMw.HasRole(domain.RoleFarmer))
	g.POST("/:productId/close-bidding", h.closeBidding, authMw.Auth(), authMw.HasRole(domain.RoleFarmer))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	sellerId := c.Get("userId").(domain.UserId)

	type params struct {
		Name        string    `json:"name" validate:"required"`
		Category    string    `json:"category"`
		Description string    `json:"description"`
		Quantity    int32     `json:"quantity" validate:"gte=0"`
		Price       int64     `json:"price" validate:"required,gt=0"`
		ExpiryDate  time.Time `json:"expiryDate" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	res, err := h.product.Create(ctx, &product.Product{
		SellerId:    sellerId,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Quantity:    p.Quantity,
		Price:       p.Price,
		ExpiryDate:  p.ExpiryDate,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	productId := domain.ProductId(c.Param("productId"))

	res, err := h.product.GetWithStatus(ctx, productId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Category string `query:"category"`
		Offset   int32  `query:"offset"`
		Limit    int32  `query:"limit" validate:"gte=0,lte=100"`
	}

	p := &params{Limit: 50}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	opts := []product.FindAllOptionsFunc{
		product.WithPagination(p.Offset, p.Limit),
	}
	if p.Category != "" {
		opts = append(opts, product.WithCategory(p.Category))
	}

	res, err := h.product.List(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) listBySeller(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	sellerId := domain.UserId(c.Param("sellerId"))

	res, err := h.product.List(ctx, product.WithSeller(sellerId))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) closeBidding(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	sellerId := c.Get("userId").(domain.UserId)
	productId := domain.ProductId(c.Param("productId"))

	if err := h.product.CloseBidding(ctx, productId, sellerId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
