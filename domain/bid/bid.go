package bid

import (
	"time"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/domain"
)

// Bid is an accepted offer on a product. Bids are append only and immutable;
// an accepted amount is strictly greater than every earlier accepted amount
// on the same product and the product's floor price.
type Bid struct {
	Id        domain.BidId     `json:"id" bson:"id"`
	ProductId domain.ProductId `json:"productId" bson:"productId"`
	BidderId  domain.UserId    `json:"bidderId" bson:"bidderId"`
	Amount    int64            `json:"amount" bson:"amount"`
	CreatedAt time.Time        `json:"createdAt" bson:"createdAt"`
}

// BidWithProduct is the bidder-facing view joined with listing info
type BidWithProduct struct {
	Bid
	ProductName string        `json:"productName"`
	SellerId    domain.UserId `json:"sellerId"`
}

// HighestBid is the shared definition of "price to beat": the top accepted
// bid, or the floor price when no bid exists yet.
type HighestBid struct {
	ProductId domain.ProductId `json:"productId"`
	Amount    int64            `json:"amount"`
	// Bid is nil when Amount is the floor price
	Bid *Bid `json:"bid,omitempty"`
}

type FindAllOptions struct {
	ProductId  *domain.ProductId
	ProductIds *[]domain.ProductId
	BidderId   *domain.UserId
	SortBy     *string
	SortDir    *domain.SortDir
	Offset     *int32
	Limit      *int32
}

func ParseFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

type FindAllOptionsFunc func(*FindAllOptions) error

func WithProduct(productId domain.ProductId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ProductId = &productId
		return nil
	}
}

func WithProducts(productIds []domain.ProductId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ProductIds = &productIds
		return nil
	}
}

func WithBidder(bidderId domain.UserId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.BidderId = &bidderId
		return nil
	}
}

func WithSort(sortBy string, sortDir domain.SortDir) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SortBy = &sortBy
		options.SortDir = &sortDir
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type Repo interface {
	Insert(ctx ctx.Ctx, bid *Bid) error
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Bid, error)
	FindOne(ctx ctx.Ctx, id domain.BidId) (*Bid, error)
	// FindTop returns the highest bid of the product, ties broken by the
	// earlier createdAt. domain.ErrNotFound when the product has no bids.
	FindTop(ctx ctx.Ctx, productId domain.ProductId) (*Bid, error)
}

type Usecase interface {
	// PlaceBid validates the payment gate, the auction state and the
	// monotonic amount rule, then appends the bid and publishes it.
	PlaceBid(ctx ctx.Ctx, productId domain.ProductId, bidderId domain.UserId, amount int64) (*Bid, error)
	ListByProduct(ctx ctx.Ctx, productId domain.ProductId) ([]*Bid, error)
	ListByBidder(ctx ctx.Ctx, bidderId domain.UserId) ([]*BidWithProduct, error)
	ListBySeller(ctx ctx.Ctx, sellerId domain.UserId) ([]*BidWithProduct, error)
	GetHighestBid(ctx ctx.Ctx, productId domain.ProductId) (*HighestBid, error)
	DeclareWinner(ctx ctx.Ctx, productId domain.ProductId, sellerId domain.UserId, bidId domain.BidId) (*Winner, error)
	ListWinnersBySeller(ctx ctx.Ctx, sellerId domain.UserId) ([]*Winner, error)
}
