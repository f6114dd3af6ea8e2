package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/base/ptr"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/bid"
	bidMocks "github.com/agritrade/goapi/domain/bid/mocks"
	"github.com/agritrade/goapi/domain/product"
	productMocks "github.com/agritrade/goapi/domain/product/mocks"
)

var mockCtx = bCtx.Background()

type productSuite struct {
	suite.Suite

	repo    *productMocks.Repo
	winners *bidMocks.WinnerRepo
	im      product.Usecase

	now time.Time
}

func TestProductSuite(t *testing.T) {
	suite.Run(t, new(productSuite))
}

func (s *productSuite) SetupTest() {
	s.repo = &productMocks.Repo{}
	s.winners = &bidMocks.WinnerRepo{}
	s.im = New(s.repo, s.winners)

	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return s.now }
}

func (s *productSuite) TearDownTest() {
	timeNow = time.Now
	s.repo.AssertExpectations(s.T())
	s.winners.AssertExpectations(s.T())
}

func (s *productSuite) TestCreate() {
	s.repo.On("Insert", mockCtx, mock.AnythingOfType("*product.Product")).Return(nil).Once()

	p, err := s.im.Create(mockCtx, &product.Product{
		SellerId:   "farmer-1",
		Name:       "maize 50kg",
		Price:      1000,
		ExpiryDate: s.now.Add(48 * time.Hour),
	})
	s.NoError(err)
	s.NotEmpty(p.Id)
	s.False(p.BiddingClosed)
	s.Equal(s.now, p.CreatedAt)
}

func (s *productSuite) TestCreateValidatesInput() {
	_, err := s.im.Create(mockCtx, &product.Product{
		SellerId:   "farmer-1",
		Name:       "maize 50kg",
		Price:      0,
		ExpiryDate: s.now.Add(time.Hour),
	})
	s.Equal(domain.ErrBadParamInput, err)

	_, err = s.im.Create(mockCtx, &product.Product{
		SellerId:   "farmer-1",
		Name:       "maize 50kg",
		Price:      1000,
		ExpiryDate: s.now.Add(-time.Hour),
	})
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *productSuite) TestGetWithStatus() {
	p := &product.Product{
		Id:         "p1",
		SellerId:   "farmer-1",
		ExpiryDate: s.now.Add(time.Hour),
	}
	s.repo.On("FindOne", mockCtx, domain.ProductId("p1")).Return(p, nil).Once()
	s.winners.On("FindOne", mockCtx, domain.ProductId("p1")).Return(nil, domain.ErrNotFound).Once()

	res, err := s.im.GetWithStatus(mockCtx, "p1")
	s.NoError(err)
	s.Equal(product.StatusOpen, res.Status)

	s.repo.On("FindOne", mockCtx, domain.ProductId("p1")).Return(p, nil).Once()
	s.winners.On("FindOne", mockCtx, domain.ProductId("p1")).Return(&bid.Winner{ProductId: "p1"}, nil).Once()

	res, err = s.im.GetWithStatus(mockCtx, "p1")
	s.NoError(err)
	s.Equal(product.StatusWinnerDeclared, res.Status)
}

func (s *productSuite) TestCloseBidding() {
	p := &product.Product{
		Id:       "p1",
		SellerId: "farmer-1",
	}
	s.repo.On("FindOne", mockCtx, domain.ProductId("p1")).Return(p, nil).Once()
	s.repo.On("Update", mockCtx, domain.ProductId("p1"), &product.Updater{BiddingClosed: ptr.Bool(true)}).Return(nil).Once()

	s.NoError(s.im.CloseBidding(mockCtx, "p1", "farmer-1"))
}

func (s *productSuite) TestCloseBiddingRejectsNonOwner() {
	p := &product.Product{
		Id:       "p1",
		SellerId: "farmer-1",
	}
	s.repo.On("FindOne", mockCtx, domain.ProductId("p1")).Return(p, nil).Once()

	s.Equal(domain.ErrNotOwner, s.im.CloseBidding(mockCtx, "p1", "farmer-2"))
}

func (s *productSuite) TestCloseBiddingIsIdempotent() {
	p := &product.Product{
		Id:            "p1",
		SellerId:      "farmer-1",
		BiddingClosed: true,
	}
	s.repo.On("FindOne", mockCtx, domain.ProductId("p1")).Return(p, nil).Once()

	// no Update expected, second close is a no-op
	s.NoError(s.im.CloseBidding(mockCtx, "p1", "farmer-1"))
}
