package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// MakeJsonResp writes the common response envelope. When data is an error
// it picks a more specific status code for well-known domain errors.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, query.ErrNotFound) {
			status = http.StatusNotFound
		} else if errors.Is(err, domain.ErrBidTooLow) || errors.Is(err, domain.ErrAuctionClosed) || errors.Is(err, domain.ErrBadParamInput) {
			status = http.StatusBadRequest
		} else if errors.Is(err, domain.ErrAlreadyDeclared) || errors.Is(err, domain.ErrConflict) {
			status = http.StatusConflict
		} else if errors.Is(err, domain.ErrPaymentRequired) || errors.Is(err, domain.ErrPaymentFailed) {
			status = http.StatusPaymentRequired
		} else if errors.Is(err, domain.ErrNotOwner) {
			status = http.StatusForbidden
		} else if errors.Is(err, domain.ErrInvalidToken) {
			status = http.StatusUnauthorized
		}
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
