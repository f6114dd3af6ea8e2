package product

import (
	"time"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/domain"
)

// Product is an auction listing. Price is the floor in RWF; a first bid must
// exceed it. BiddingClosed flips false to true exactly once and never back.
type Product struct {
	Id            domain.ProductId `json:"id" bson:"id"`
	SellerId      domain.UserId    `json:"sellerId" bson:"sellerId"`
	Name          string           `json:"name" bson:"name"`
	Category      string           `json:"category" bson:"category"`
	Description   string           `json:"description" bson:"description"`
	Quantity      int32            `json:"quantity" bson:"quantity"`
	Price         int64            `json:"price" bson:"price"`
	ExpiryDate    time.Time        `json:"expiryDate" bson:"expiryDate"`
	BiddingClosed bool             `json:"biddingClosed" bson:"biddingClosed"`
	CreatedAt     time.Time        `json:"createdAt" bson:"createdAt,omitempty"`
}

type Updater struct {
	Name        *string `json:"name" bson:"name,omitempty"`
	Category    *string `json:"category" bson:"category,omitempty"`
	Description *string `json:"description" bson:"description,omitempty"`
	Quantity    *int32  `json:"quantity" bson:"quantity,omitempty"`
	// set by usecase only, a closed auction never reopens
	BiddingClosed *bool `json:"-" bson:"biddingClosed,omitempty"`
}

type FindAllOptions struct {
	SellerId *domain.UserId
	Category *string
	Offset   *int32
	Limit    *int32
	SortBy   *string
	SortDir  *domain.SortDir
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

func WithSeller(sellerId domain.UserId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SellerId = &sellerId
		return nil
	}
}

func WithCategory(category string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Category = &category
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

func WithSort(sortBy string, sortDir domain.SortDir) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SortBy = &sortBy
		options.SortDir = &sortDir
		return nil
	}
}

type Repo interface {
	Insert(ctx ctx.Ctx, product *Product) error
	FindOne(ctx ctx.Ctx, id domain.ProductId) (*Product, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Product, error)
	Update(ctx ctx.Ctx, id domain.ProductId, updater *Updater) error
}

type Usecase interface {
	Create(ctx ctx.Ctx, product *Product) (*Product, error)
	Get(ctx ctx.Ctx, id domain.ProductId) (*Product, error)
	GetWithStatus(ctx ctx.Ctx, id domain.ProductId) (*ProductWithStatus, error)
	List(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Product, error)
	CloseBidding(ctx ctx.Ctx, id domain.ProductId, sellerId domain.UserId) error
}

// ProductWithStatus carries the derived auction status alongside the listing
type ProductWithStatus struct {
	Product
	Status Status `json:"status"`
}
