package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/bid"
	"github.com/agritrade/goapi/service/query"
)

type winnerImpl struct {
	q query.Mongo
}

func NewWinner(q query.Mongo) bid.WinnerRepo {
	return &winnerImpl{q}
}

// EnsureIndexes creates the unique index on winners.productId. The index is
// the concurrent backstop for the one-winner-per-product invariant and must
// exist before the api serves traffic.
func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndex(c, domain.TableWinners, bson.D{{Key: "productId", Value: 1}}, true)
}

// Insert relies on the unique index on productId to guarantee at most one
// winner per product even under concurrent declarations.
func (im *winnerImpl) Insert(c ctx.Ctx, w *bid.Winner) error {
	if err := im.q.Insert(c, domain.TableWinners, w); err != nil {
		if err == query.ErrDuplicateKey {
			return domain.ErrAlreadyDeclared
		}
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *winnerImpl) FindOne(c ctx.Ctx, productId domain.ProductId) (*bid.Winner, error) {
	res := &bid.Winner{}
	if err := im.q.FindOne(c, domain.TableWinners, bson.M{"productId": productId}, res); err != nil {
		if err == query.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *winnerImpl) FindBySeller(c ctx.Ctx, sellerId domain.UserId) ([]*bid.Winner, error) {
	res := []*bid.Winner{}
	if err := im.q.Search(c, domain.TableWinners, 0, 0, "-declaredAt", bson.M{"sellerId": sellerId}, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
