package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"

	bCtx "github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/base/log"
	"github.com/agritrade/goapi/base/metrics"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/bid"
	"github.com/agritrade/goapi/domain/payment"
	"github.com/agritrade/goapi/domain/product"
	"github.com/agritrade/goapi/service/broadcast"
	"github.com/agritrade/goapi/service/query"
)

var timeNow = time.Now

const productFetchConcurrency = 10

type impl struct {
	bids     bid.Repo
	winners  bid.WinnerRepo
	products product.Repo
	fee      payment.FeeChecker
	hub      broadcast.Service
	q        query.Mongo
	met      metrics.Service

	// per-product locks serializing the read-max/compare/insert section
	locks sync.Map
}

func New(
	bids bid.Repo,
	winners bid.WinnerRepo,
	products product.Repo,
	fee payment.FeeChecker,
	hub broadcast.Service,
	q query.Mongo,
) bid.Usecase {
	return &impl{
		bids:     bids,
		winners:  winners,
		products: products,
		fee:      fee,
		hub:      hub,
		q:        q,
		met:      metrics.New("bid"),
	}
}

func (im *impl) lock(productId domain.ProductId) func() {
	v, _ := im.locks.LoadOrStore(productId, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// PlaceBid appends a bid after the payment gate, the auction state and the
// monotonic amount rule all pass. Validation and insert run under the
// product lock so concurrent bids of equal amount admit exactly one. The
// accepted event is published before the lock is released, which keeps the
// per-product event order identical to the acceptance order.
func (im *impl) PlaceBid(c bCtx.Ctx, productId domain.ProductId, bidderId domain.UserId, amount int64) (*bid.Bid, error) {
	if productId == "" || bidderId.IsEmpty() || amount <= 0 {
		return nil, domain.ErrBadParamInput
	}

	// the gate consults the payment store and may poll the provider, keep
	// it outside the critical section
	if paid, err := im.fee.HasPaidFee(c, productId, bidderId); err != nil {
		c.WithField("err", err).Error("fee.HasPaidFee failed")
		return nil, err
	} else if !paid {
		return nil, domain.ErrPaymentRequired
	}

	unlock := im.lock(productId)
	defer unlock()

	p, err := im.products.FindOne(c, productId)
	if err != nil {
		return nil, err
	}

	if !product.AcceptsBids(timeNow(), p.ExpiryDate, p.BiddingClosed) {
		return nil, domain.ErrAuctionClosed
	}

	highest, err := im.getHighestBid(c, p)
	if err != nil {
		return nil, err
	}
	if amount <= highest.Amount {
		return nil, xerrors.Errorf("current highest is %d: %w", highest.Amount, domain.ErrBidTooLow)
	}

	b := &bid.Bid{
		Id:        domain.BidId(uuid.New().String()),
		ProductId: productId,
		BidderId:  bidderId,
		Amount:    amount,
		CreatedAt: timeNow(),
	}

	if err := im.q.RunWithTransaction(c, func(c bCtx.Ctx) error {
		return im.bids.Insert(c, b)
	}); err != nil {
		c.WithFields(log.Fields{"err": err, "productId": productId}).Error("insert bid failed")
		return nil, err
	}

	im.met.BumpSum("placed", 1)
	im.hub.Publish(c, productId, &bid.Event{Type: bid.EventTypeBidAccepted, Bid: b})

	return b, nil
}

func (im *impl) ListByProduct(c bCtx.Ctx, productId domain.ProductId) ([]*bid.Bid, error) {
	return im.bids.FindAll(c,
		bid.WithProduct(productId),
		bid.WithSort("amount", domain.SortDirDesc),
	)
}

func (im *impl) ListByBidder(c bCtx.Ctx, bidderId domain.UserId) ([]*bid.BidWithProduct, error) {
	bids, err := im.bids.FindAll(c,
		bid.WithBidder(bidderId),
		bid.WithSort("createdAt", domain.SortDirDesc),
	)
	if err != nil {
		return nil, err
	}

	return im.joinProducts(c, bids)
}

func (im *impl) ListBySeller(c bCtx.Ctx, sellerId domain.UserId) ([]*bid.BidWithProduct, error) {
	prods, err := im.products.FindAll(c, product.WithSeller(sellerId))
	if err != nil {
		return nil, err
	}
	if len(prods) == 0 {
		return []*bid.BidWithProduct{}, nil
	}

	productIds := make([]domain.ProductId, 0, len(prods))
	byId := map[domain.ProductId]*product.Product{}
	for _, p := range prods {
		productIds = append(productIds, p.Id)
		byId[p.Id] = p
	}

	bids, err := im.bids.FindAll(c,
		bid.WithProducts(productIds),
		bid.WithSort("createdAt", domain.SortDirDesc),
	)
	if err != nil {
		return nil, err
	}

	res := make([]*bid.BidWithProduct, 0, len(bids))
	for _, b := range bids {
		p := byId[b.ProductId]
		res = append(res, &bid.BidWithProduct{
			Bid:         *b,
			ProductName: p.Name,
			SellerId:    p.SellerId,
		})
	}
	return res, nil
}

// joinProducts resolves product names for the bidder view, fetching each
// distinct product once in parallel.
func (im *impl) joinProducts(c bCtx.Ctx, bids []*bid.Bid) ([]*bid.BidWithProduct, error) {
	if len(bids) == 0 {
		return []*bid.BidWithProduct{}, nil
	}

	distinct := []domain.ProductId{}
	seen := map[domain.ProductId]bool{}
	for _, b := range bids {
		if !seen[b.ProductId] {
			seen[b.ProductId] = true
			distinct = append(distinct, b.ProductId)
		}
	}

	batch := goroutines.NewBatch(productFetchConcurrency, goroutines.WithBatchSize(len(distinct)))
	defer batch.Close()

	for _, id := range distinct {
		productId := id
		batch.Queue(func() (interface{}, error) {
			return im.products.FindOne(c, productId)
		})
	}
	batch.QueueComplete()

	byId := map[domain.ProductId]*product.Product{}
	for r := range batch.Results() {
		if err := r.Error(); err != nil {
			c.WithField("err", err).Error("products.FindOne failed")
			return nil, err
		}
		p := r.Value().(*product.Product)
		byId[p.Id] = p
	}

	res := make([]*bid.BidWithProduct, 0, len(bids))
	for _, b := range bids {
		p := byId[b.ProductId]
		res = append(res, &bid.BidWithProduct{
			Bid:         *b,
			ProductName: p.Name,
			SellerId:    p.SellerId,
		})
	}
	return res, nil
}

func (im *impl) GetHighestBid(c bCtx.Ctx, productId domain.ProductId) (*bid.HighestBid, error) {
	p, err := im.products.FindOne(c, productId)
	if err != nil {
		return nil, err
	}
	return im.getHighestBid(c, p)
}

// getHighestBid is the single definition of the price to beat, shared by
// bid validation and the query endpoint.
func (im *impl) getHighestBid(c bCtx.Ctx, p *product.Product) (*bid.HighestBid, error) {
	top, err := im.bids.FindTop(c, p.Id)
	if err == domain.ErrNotFound {
		return &bid.HighestBid{ProductId: p.Id, Amount: p.Price}, nil
	}
	if err != nil {
		return nil, err
	}
	return &bid.HighestBid{ProductId: p.Id, Amount: top.Amount, Bid: top}, nil
}

// DeclareWinner closes the auction and records the winning bid in one
// transaction. A pre-check inside the transaction rejects a second
// declaration; the unique winner index backs it up against interleavings the
// pre-check cannot see. The product lock keeps an in-flight bid from
// committing after the winner record does.
func (im *impl) DeclareWinner(c bCtx.Ctx, productId domain.ProductId, sellerId domain.UserId, bidId domain.BidId) (*bid.Winner, error) {
	unlock := im.lock(productId)
	defer unlock()

	p, err := im.products.FindOne(c, productId)
	if err != nil {
		return nil, err
	}
	if p.SellerId != sellerId {
		return nil, domain.ErrNotOwner
	}

	b, err := im.bids.FindOne(c, bidId)
	if err != nil {
		return nil, err
	}
	if b.ProductId != productId {
		return nil, domain.ErrBadParamInput
	}

	w := &bid.Winner{
		ProductId:  productId,
		BidId:      b.Id,
		BidderId:   b.BidderId,
		SellerId:   p.SellerId,
		Amount:     b.Amount,
		DeclaredAt: timeNow(),
	}

	closed := true
	if err := im.q.RunWithTransaction(c, func(c bCtx.Ctx) error {
		if _, err := im.winners.FindOne(c, productId); err == nil {
			return domain.ErrAlreadyDeclared
		} else if err != domain.ErrNotFound {
			return err
		}
		if err := im.winners.Insert(c, w); err != nil {
			return err
		}
		return im.products.Update(c, productId, &product.Updater{BiddingClosed: &closed})
	}); err != nil {
		if err != domain.ErrAlreadyDeclared {
			c.WithFields(log.Fields{"err": err, "productId": productId}).Error("declare winner failed")
		}
		return nil, err
	}

	im.met.BumpSum("winner.declared", 1)
	im.hub.Publish(c, productId, &bid.Event{Type: bid.EventTypeWinnerDeclared, Bid: b})

	return w, nil
}

func (im *impl) ListWinnersBySeller(c bCtx.Ctx, sellerId domain.UserId) ([]*bid.Winner, error) {
	return im.winners.FindBySeller(c, sellerId)
}
