package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/bid"
	"github.com/agritrade/goapi/domain/product"
)

var timeNow = time.Now

type impl struct {
	repo    product.Repo
	winners bid.WinnerRepo
}

func New(repo product.Repo, winners bid.WinnerRepo) product.Usecase {
	return &impl{
		repo:    repo,
		winners: winners,
	}
}

func (im *impl) Create(c ctx.Ctx, p *product.Product) (*product.Product, error) {
	if p.SellerId.IsEmpty() || p.Name == "" || p.Price <= 0 {
		return nil, domain.ErrBadParamInput
	}
	if !p.ExpiryDate.After(timeNow()) {
		return nil, domain.ErrBadParamInput
	}

	p.Id = domain.ProductId(uuid.New().String())
	p.BiddingClosed = false
	p.CreatedAt = timeNow()

	if err := im.repo.Insert(c, p); err != nil {
		c.WithField("err", err).Error("repo.Insert failed")
		return nil, err
	}
	return p, nil
}

func (im *impl) Get(c ctx.Ctx, id domain.ProductId) (*product.Product, error) {
	return im.repo.FindOne(c, id)
}

func (im *impl) GetWithStatus(c ctx.Ctx, id domain.ProductId) (*product.ProductWithStatus, error) {
	p, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	hasWinner := true
	if _, err := im.winners.FindOne(c, id); err == domain.ErrNotFound {
		hasWinner = false
	} else if err != nil {
		c.WithField("err", err).Error("winners.FindOne failed")
		return nil, err
	}

	return &product.ProductWithStatus{
		Product: *p,
		Status:  product.StatusOf(timeNow(), p.ExpiryDate, p.BiddingClosed, hasWinner),
	}, nil
}

func (im *impl) List(c ctx.Ctx, opts ...product.FindAllOptionsFunc) ([]*product.Product, error) {
	return im.repo.FindAll(c, opts...)
}

// CloseBidding sets the closed flag. Closing an already closed auction is a
// no-op so the operation can be retried safely.
func (im *impl) CloseBidding(c ctx.Ctx, id domain.ProductId, sellerId domain.UserId) error {
	p, err := im.repo.FindOne(c, id)
	if err != nil {
		return err
	}
	if p.SellerId != sellerId {
		return domain.ErrNotOwner
	}
	if p.BiddingClosed {
		return nil
	}

	closed := true
	return im.repo.Update(c, id, &product.Updater{BiddingClosed: &closed})
}
