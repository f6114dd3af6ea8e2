package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// bidding errors
	ErrBidTooLow       = errors.New("bid amount must exceed the current highest bid")
	ErrAuctionClosed   = errors.New("bidding is closed for this product")
	ErrAlreadyDeclared = errors.New("winner already declared for this product")

	// payment errors
	ErrPaymentRequired = errors.New("bidding fee has not been paid")
	ErrPaymentFailed   = errors.New("payment was not successful")

	ErrInvalidToken = errors.New("invalid token")
	ErrNotOwner     = errors.New("not the owner of this product")
)
