package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/bid"
	"github.com/agritrade/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) bid.Repo {
	return &impl{q}
}

func (im *impl) Insert(c ctx.Ctx, b *bid.Bid) error {
	if err := im.q.Insert(c, domain.TableBids, b); err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (im *impl) FindAll(c ctx.Ctx, optFns ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	opts, err := bid.ParseFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("bid.ParseFindAllOptions failed")
		return nil, err
	}

	offset := int32(0)
	limit := int32(0)
	sorts := []string{"-createdAt"}

	qry := bson.M{}
	if opts.ProductId != nil {
		qry["productId"] = *opts.ProductId
	}
	if opts.ProductIds != nil {
		qry["productId"] = bson.M{"$in": *opts.ProductIds}
	}
	if opts.BidderId != nil {
		qry["bidderId"] = *opts.BidderId
	}
	if opts.Offset != nil {
		offset = *opts.Offset
	}
	if opts.Limit != nil {
		limit = *opts.Limit
	}
	if opts.SortBy != nil {
		sort := *opts.SortBy
		if opts.SortDir != nil && *opts.SortDir == domain.SortDirDesc {
			sort = "-" + sort
		}
		// ties go to the earlier bid
		sorts = []string{sort, "createdAt"}
	}

	res := []*bid.Bid{}
	if err := im.q.SearchNSorts(c, domain.TableBids, int(offset), int(limit), sorts, qry, &res); err != nil {
		c.WithField("err", err).Error("q.SearchNSorts failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindOne(c ctx.Ctx, id domain.BidId) (*bid.Bid, error) {
	res := &bid.Bid{}
	if err := im.q.FindOne(c, domain.TableBids, bson.M{"id": id}, res); err != nil {
		if err == query.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindTop(c ctx.Ctx, productId domain.ProductId) (*bid.Bid, error) {
	res := []*bid.Bid{}
	if err := im.q.SearchNSorts(c, domain.TableBids, 0, 1, []string{"-amount", "createdAt"}, bson.M{"productId": productId}, &res); err != nil {
		c.WithField("err", err).Error("q.SearchNSorts failed")
		return nil, err
	}
	if len(res) == 0 {
		return nil, domain.ErrNotFound
	}
	return res[0], nil
}
