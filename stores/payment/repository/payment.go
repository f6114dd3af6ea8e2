package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/payment"
	"github.com/agritrade/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) payment.Repo {
	return &impl{q}
}

func (im *impl) Insert(c ctx.Ctx, p *payment.FeePayment) error {
	if err := im.q.Insert(c, domain.TableFeePayments, p); err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, reference domain.PaymentRef) (*payment.FeePayment, error) {
	res := &payment.FeePayment{}
	if err := im.q.FindOne(c, domain.TableFeePayments, bson.M{"reference": reference}, res); err != nil {
		if err == query.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Update(c ctx.Ctx, reference domain.PaymentRef, updater *payment.Updater) error {
	if err := im.q.Patch(c, domain.TableFeePayments, bson.M{"reference": reference}, updater); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrNotFound
		}
		c.WithField("err", err).Error("q.Patch failed")
		return err
	}
	return nil
}

func (im *impl) FindSuccessful(c ctx.Ctx, productId domain.ProductId, payerId domain.UserId) (*payment.FeePayment, error) {
	res := &payment.FeePayment{}
	qry := bson.M{
		"productId": productId,
		"payerId":   payerId,
		"status":    payment.StatusSuccessful,
	}
	if err := im.q.FindOne(c, domain.TableFeePayments, qry, res); err != nil {
		if err == query.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}
