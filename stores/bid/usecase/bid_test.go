package usecase

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/bid"
	"github.com/agritrade/goapi/domain/payment"
	"github.com/agritrade/goapi/domain/product"
	"github.com/agritrade/goapi/service/query"
)

var mockCtx = bCtx.Background()

// in-memory repos back the concurrency tests, where call-count mocks
// cannot express interleavings

type fakeBidRepo struct {
	mu   sync.Mutex
	bids []*bid.Bid
}

func (r *fakeBidRepo) Insert(c bCtx.Ctx, b *bid.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bids = append(r.bids, &cp)
	return nil
}

func (r *fakeBidRepo) FindAll(c bCtx.Ctx, optFns ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	opts, err := bid.ParseFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	res := []*bid.Bid{}
	for _, b := range r.bids {
		if opts.ProductId != nil && b.ProductId != *opts.ProductId {
			continue
		}
		if opts.BidderId != nil && b.BidderId != *opts.BidderId {
			continue
		}
		if opts.ProductIds != nil {
			found := false
			for _, id := range *opts.ProductIds {
				if b.ProductId == id {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		res = append(res, b)
	}

	if opts.SortBy != nil && *opts.SortBy == "amount" {
		sort.Slice(res, func(i, j int) bool { return res[i].Amount > res[j].Amount })
	}
	return res, nil
}

func (r *fakeBidRepo) FindOne(c bCtx.Ctx, id domain.BidId) (*bid.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bids {
		if b.Id == id {
			return b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeBidRepo) FindTop(c bCtx.Ctx, productId domain.ProductId) (*bid.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var top *bid.Bid
	for _, b := range r.bids {
		if b.ProductId != productId {
			continue
		}
		if top == nil || b.Amount > top.Amount ||
			(b.Amount == top.Amount && b.CreatedAt.Before(top.CreatedAt)) {
			top = b
		}
	}
	if top == nil {
		return nil, domain.ErrNotFound
	}
	return top, nil
}

type fakeWinnerRepo struct {
	mu      sync.Mutex
	winners map[domain.ProductId]*bid.Winner
}

func newFakeWinnerRepo() *fakeWinnerRepo {
	return &fakeWinnerRepo{winners: map[domain.ProductId]*bid.Winner{}}
}

func (r *fakeWinnerRepo) Insert(c bCtx.Ctx, w *bid.Winner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.winners[w.ProductId]; ok {
		return domain.ErrAlreadyDeclared
	}
	r.winners[w.ProductId] = w
	return nil
}

func (r *fakeWinnerRepo) FindOne(c bCtx.Ctx, productId domain.ProductId) (*bid.Winner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.winners[productId]; ok {
		return w, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeWinnerRepo) FindBySeller(c bCtx.Ctx, sellerId domain.UserId) ([]*bid.Winner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []*bid.Winner{}
	for _, w := range r.winners {
		if w.SellerId == sellerId {
			res = append(res, w)
		}
	}
	return res, nil
}

// laxWinnerRepo stores without enforcing uniqueness, like a collection whose
// unique index is missing
type laxWinnerRepo struct {
	*fakeWinnerRepo
}

func (r *laxWinnerRepo) Insert(c bCtx.Ctx, w *bid.Winner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.winners[w.ProductId] = w
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[domain.ProductId]*product.Product
}

func newFakeProductRepo(products ...*product.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[domain.ProductId]*product.Product{}}
	for _, p := range products {
		r.products[p.Id] = p
	}
	return r
}

func (r *fakeProductRepo) Insert(c bCtx.Ctx, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.Id] = p
	return nil
}

func (r *fakeProductRepo) FindOne(c bCtx.Ctx, id domain.ProductId) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) FindAll(c bCtx.Ctx, optFns ...product.FindAllOptionsFunc) ([]*product.Product, error) {
	opts, err := product.ParseFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	res := []*product.Product{}
	for _, p := range r.products {
		if opts.SellerId != nil && p.SellerId != *opts.SellerId {
			continue
		}
		res = append(res, p)
	}
	return res, nil
}

func (r *fakeProductRepo) Update(c bCtx.Ctx, id domain.ProductId, updater *product.Updater) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if updater.BiddingClosed != nil {
		p.BiddingClosed = *updater.BiddingClosed
	}
	return nil
}

type fakeFeeChecker struct {
	mu   sync.Mutex
	paid map[string]bool
	err  error
}

func newFakeFeeChecker() *fakeFeeChecker {
	return &fakeFeeChecker{paid: map[string]bool{}}
}

func (f *fakeFeeChecker) allow(productId domain.ProductId, payerId domain.UserId) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paid[string(productId)+"/"+string(payerId)] = true
}

func (f *fakeFeeChecker) HasPaidFee(c bCtx.Ctx, productId domain.ProductId, payerId domain.UserId) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	return f.paid[string(productId)+"/"+string(payerId)], nil
}

var _ payment.FeeChecker = (*fakeFeeChecker)(nil)

type fakeHub struct {
	mu     sync.Mutex
	events []*bid.Event
}

func (h *fakeHub) Subscribe(c bCtx.Ctx, productId domain.ProductId) (<-chan *bid.Event, func()) {
	ch := make(chan *bid.Event)
	close(ch)
	return ch, func() {}
}

func (h *fakeHub) Publish(c bCtx.Ctx, productId domain.ProductId, ev *bid.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
}

func (h *fakeHub) Shutdown(c bCtx.Ctx) {}

func (h *fakeHub) all() []*bid.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*bid.Event{}, h.events...)
}

// fakeTx runs the transaction body directly
type fakeTx struct {
	query.Mongo
}

func (fakeTx) RunWithTransaction(c bCtx.Ctx, run func(bCtx.Ctx) error) error {
	return run(c)
}

type bidSuite struct {
	suite.Suite

	bids     *fakeBidRepo
	winners  *fakeWinnerRepo
	products *fakeProductRepo
	fee      *fakeFeeChecker
	hub      *fakeHub
	im       bid.Usecase

	now time.Time
}

func TestBidSuite(t *testing.T) {
	suite.Run(t, new(bidSuite))
}

func (s *bidSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return s.now }

	s.bids = &fakeBidRepo{}
	s.winners = newFakeWinnerRepo()
	s.products = newFakeProductRepo(
		&product.Product{
			Id:         "p1",
			SellerId:   "farmer-1",
			Name:       "maize 50kg",
			Price:      1000,
			ExpiryDate: s.now.Add(48 * time.Hour),
		},
		&product.Product{
			Id:            "p2",
			SellerId:      "farmer-1",
			Name:          "beans 25kg",
			Price:         500,
			ExpiryDate:    s.now.Add(48 * time.Hour),
			BiddingClosed: true,
		},
	)
	s.fee = newFakeFeeChecker()
	s.hub = &fakeHub{}
	s.im = New(s.bids, s.winners, s.products, s.fee, s.hub, fakeTx{})

	s.fee.allow("p1", "buyer-1")
	s.fee.allow("p1", "buyer-2")
}

func (s *bidSuite) TearDownTest() {
	timeNow = time.Now
}

func (s *bidSuite) place(amount int64) (*bid.Bid, error) {
	return s.im.PlaceBid(mockCtx, "p1", "buyer-1", amount)
}

func (s *bidSuite) TestAmountsAreStrictlyIncreasing() {
	_, err := s.place(900)
	s.ErrorIs(err, domain.ErrBidTooLow)

	b, err := s.place(1200)
	s.NoError(err)
	s.NotEmpty(b.Id)
	s.Equal(s.now, b.CreatedAt)

	_, err = s.place(1200)
	s.ErrorIs(err, domain.ErrBidTooLow)

	_, err = s.place(1500)
	s.NoError(err)

	bids, err := s.im.ListByProduct(mockCtx, "p1")
	s.NoError(err)
	s.Len(bids, 2)
	s.Equal(int64(1500), bids[0].Amount)
	s.Equal(int64(1200), bids[1].Amount)
}

func (s *bidSuite) TestFloorIsExclusive() {
	_, err := s.place(1000)
	s.ErrorIs(err, domain.ErrBidTooLow)

	_, err = s.place(1001)
	s.NoError(err)
}

func (s *bidSuite) TestUnpaidFeeIsRejected() {
	_, err := s.im.PlaceBid(mockCtx, "p1", "buyer-3", 1200)
	s.Equal(domain.ErrPaymentRequired, err)
	s.Empty(s.bids.bids)
}

func (s *bidSuite) TestClosedProductRejectsBids() {
	s.fee.allow("p2", "buyer-1")
	_, err := s.im.PlaceBid(mockCtx, "p2", "buyer-1", 600)
	s.Equal(domain.ErrAuctionClosed, err)
}

func (s *bidSuite) TestExpiredProductRejectsBids() {
	s.now = s.now.Add(72 * time.Hour)
	_, err := s.place(1200)
	s.Equal(domain.ErrAuctionClosed, err)
}

func (s *bidSuite) TestUnknownProduct() {
	s.fee.allow("nope", "buyer-1")
	_, err := s.im.PlaceBid(mockCtx, "nope", "buyer-1", 1200)
	s.Equal(domain.ErrNotFound, err)
}

func (s *bidSuite) TestConcurrentEqualBidsAdmitOne() {
	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.im.PlaceBid(mockCtx, "p1", "buyer-1", 1200)
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
		} else {
			s.ErrorIs(err, domain.ErrBidTooLow)
		}
	}
	s.Equal(1, accepted)
	s.Len(s.bids.bids, 1)
}

func (s *bidSuite) TestEventsFollowAcceptanceOrder() {
	s.place(1100)
	s.place(900)
	s.place(1200)

	evs := s.hub.all()
	s.Len(evs, 2)
	s.Equal(bid.EventTypeBidAccepted, evs[0].Type)
	s.Equal(int64(1100), evs[0].Bid.Amount)
	s.Equal(int64(1200), evs[1].Bid.Amount)
}

func (s *bidSuite) TestGetHighestBidFallsBackToFloor() {
	h, err := s.im.GetHighestBid(mockCtx, "p1")
	s.NoError(err)
	s.Equal(int64(1000), h.Amount)
	s.Nil(h.Bid)

	s.place(1300)

	h, err = s.im.GetHighestBid(mockCtx, "p1")
	s.NoError(err)
	s.Equal(int64(1300), h.Amount)
	s.NotNil(h.Bid)
}

func (s *bidSuite) TestListByProductEmptyIsSuccess() {
	bids, err := s.im.ListByProduct(mockCtx, "p1")
	s.NoError(err)
	s.Empty(bids)
	s.NotNil(bids)
}

func (s *bidSuite) TestListByBidderJoinsProducts() {
	s.place(1100)
	s.place(1200)

	res, err := s.im.ListByBidder(mockCtx, "buyer-1")
	s.NoError(err)
	s.Len(res, 2)
	for _, b := range res {
		s.Equal("maize 50kg", b.ProductName)
		s.Equal(domain.UserId("farmer-1"), b.SellerId)
	}
}

func (s *bidSuite) TestListBySeller() {
	s.place(1100)

	res, err := s.im.ListBySeller(mockCtx, "farmer-1")
	s.NoError(err)
	s.Len(res, 1)
	s.Equal("maize 50kg", res[0].ProductName)

	res, err = s.im.ListBySeller(mockCtx, "farmer-2")
	s.NoError(err)
	s.Empty(res)
}

func (s *bidSuite) TestDeclareWinner() {
	b, err := s.place(1200)
	s.Require().NoError(err)

	w, err := s.im.DeclareWinner(mockCtx, "p1", "farmer-1", b.Id)
	s.NoError(err)
	s.Equal(b.Id, w.BidId)
	s.Equal(domain.UserId("buyer-1"), w.BidderId)
	s.Equal(int64(1200), w.Amount)
	s.Equal(s.now, w.DeclaredAt)

	// declaring closes the bidding
	p, err := s.products.FindOne(mockCtx, "p1")
	s.NoError(err)
	s.True(p.BiddingClosed)

	_, err = s.place(1500)
	s.Equal(domain.ErrAuctionClosed, err)

	evs := s.hub.all()
	s.Equal(bid.EventTypeWinnerDeclared, evs[len(evs)-1].Type)
}

func (s *bidSuite) TestDeclareWinnerTwiceFails() {
	b, err := s.place(1200)
	s.Require().NoError(err)

	_, err = s.im.DeclareWinner(mockCtx, "p1", "farmer-1", b.Id)
	s.NoError(err)

	_, err = s.im.DeclareWinner(mockCtx, "p1", "farmer-1", b.Id)
	s.Equal(domain.ErrAlreadyDeclared, err)
}

func (s *bidSuite) TestDeclareWinnerTwiceWithoutUniqueIndex() {
	lax := &laxWinnerRepo{newFakeWinnerRepo()}
	im := New(s.bids, lax, s.products, s.fee, s.hub, fakeTx{})

	b, err := im.PlaceBid(mockCtx, "p1", "buyer-1", 1200)
	s.Require().NoError(err)

	_, err = im.DeclareWinner(mockCtx, "p1", "farmer-1", b.Id)
	s.NoError(err)

	// the pre-check catches the duplicate even when the store cannot
	_, err = im.DeclareWinner(mockCtx, "p1", "farmer-1", b.Id)
	s.Equal(domain.ErrAlreadyDeclared, err)
	s.Len(lax.winners, 1)
}

func (s *bidSuite) TestDeclareWinnerWaitsForProductLock() {
	b, err := s.place(1200)
	s.Require().NoError(err)

	unlock := s.im.(*impl).lock("p1")

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.im.DeclareWinner(mockCtx, "p1", "farmer-1", b.Id)
	}()

	select {
	case <-done:
		s.Fail("declaration did not wait for the product lock")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("declaration never completed")
	}
}

func (s *bidSuite) TestDeclareWinnerRejectsNonOwner() {
	b, err := s.place(1200)
	s.Require().NoError(err)

	_, err = s.im.DeclareWinner(mockCtx, "p1", "farmer-2", b.Id)
	s.Equal(domain.ErrNotOwner, err)
}

func (s *bidSuite) TestDeclareWinnerRejectsForeignBid() {
	s.fee.allow("p3", "buyer-1")
	s.products.Insert(mockCtx, &product.Product{
		Id:         "p3",
		SellerId:   "farmer-1",
		Name:       "cassava",
		Price:      200,
		ExpiryDate: s.now.Add(time.Hour),
	})
	b, err := s.im.PlaceBid(mockCtx, "p3", "buyer-1", 300)
	s.Require().NoError(err)

	_, err = s.im.DeclareWinner(mockCtx, "p1", "farmer-1", b.Id)
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *bidSuite) TestDeclareWinnerAfterExpiry() {
	b, err := s.place(1200)
	s.Require().NoError(err)

	// bidding window closes, declaring the winner still works
	s.now = s.now.Add(72 * time.Hour)
	_, err = s.place(1500)
	s.Equal(domain.ErrAuctionClosed, err)

	w, err := s.im.DeclareWinner(mockCtx, "p1", "farmer-1", b.Id)
	s.NoError(err)
	s.Equal(b.Id, w.BidId)

	_, err = s.im.DeclareWinner(mockCtx, "p1", "farmer-1", b.Id)
	s.Equal(domain.ErrAlreadyDeclared, err)
}

func (s *bidSuite) TestListWinnersBySeller() {
	b, err := s.place(1200)
	s.Require().NoError(err)
	_, err = s.im.DeclareWinner(mockCtx, "p1", "farmer-1", b.Id)
	s.Require().NoError(err)

	ws, err := s.im.ListWinnersBySeller(mockCtx, "farmer-1")
	s.NoError(err)
	s.Len(ws, 1)

	ws, err = s.im.ListWinnersBySeller(mockCtx, "farmer-2")
	s.NoError(err)
	s.Empty(ws)
}
