package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/product"
	"github.com/agritrade/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) product.Repo {
	return &impl{q}
}

func (im *impl) Insert(c ctx.Ctx, p *product.Product) error {
	if err := im.q.Insert(c, domain.TableProducts, p); err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, id domain.ProductId) (*product.Product, error) {
	res := &product.Product{}
	if err := im.q.FindOne(c, domain.TableProducts, bson.M{"id": id}, res); err != nil {
		if err == query.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(c ctx.Ctx, optFns ...product.FindAllOptionsFunc) ([]*product.Product, error) {
	opts, err := product.ParseFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("product.ParseFindAllOptions failed")
		return nil, err
	}

	offset := int32(0)
	limit := int32(0)
	sort := "-createdAt"

	qry := bson.M{}
	if opts.SellerId != nil {
		qry["sellerId"] = *opts.SellerId
	}
	if opts.Category != nil {
		qry["category"] = *opts.Category
	}
	if opts.Offset != nil {
		offset = *opts.Offset
	}
	if opts.Limit != nil {
		limit = *opts.Limit
	}
	if opts.SortBy != nil {
		sort = *opts.SortBy
		if opts.SortDir != nil && *opts.SortDir == domain.SortDirDesc {
			sort = "-" + sort
		}
	}

	res := []*product.Product{}
	if err := im.q.Search(c, domain.TableProducts, int(offset), int(limit), sort, qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Update(c ctx.Ctx, id domain.ProductId, updater *product.Updater) error {
	if err := im.q.Patch(c, domain.TableProducts, bson.M{"id": id}, updater); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrNotFound
		}
		c.WithField("err", err).Error("q.Patch failed")
		return err
	}
	return nil
}
