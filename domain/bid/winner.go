package bid

import (
	"time"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/domain"
)

// Winner records the single declared winning bid of a product. At most one
// winner exists per product; the record is written in the same transaction
// that closes the bidding.
type Winner struct {
	ProductId  domain.ProductId `json:"productId" bson:"productId"`
	BidId      domain.BidId     `json:"bidId" bson:"bidId"`
	BidderId   domain.UserId    `json:"bidderId" bson:"bidderId"`
	SellerId   domain.UserId    `json:"sellerId" bson:"sellerId"`
	Amount     int64            `json:"amount" bson:"amount"`
	DeclaredAt time.Time        `json:"declaredAt" bson:"declaredAt"`
}

type WinnerRepo interface {
	// Insert fails with domain.ErrAlreadyDeclared when a winner record for
	// the product already exists.
	Insert(ctx ctx.Ctx, winner *Winner) error
	FindOne(ctx ctx.Ctx, productId domain.ProductId) (*Winner, error)
	FindBySeller(ctx ctx.Ctx, sellerId domain.UserId) ([]*Winner, error)
}
