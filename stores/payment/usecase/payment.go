package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/agritrade/goapi/base/backoff"
	bCtx "github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/base/log"
	"github.com/agritrade/goapi/base/metrics"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/payment"
)

var timeNow = time.Now

type impl struct {
	repo    payment.Repo
	gateway payment.Gateway
	met     metrics.Service

	feeAmount    int64
	pollInterval time.Duration
	pollAttempts int
}

func New(
	repo payment.Repo,
	gateway payment.Gateway,
	feeAmount int64,
	pollInterval time.Duration,
	pollAttempts int,
) payment.Usecase {
	return &impl{
		repo:         repo,
		gateway:      gateway,
		met:          metrics.New("payment"),
		feeAmount:    feeAmount,
		pollInterval: pollInterval,
		pollAttempts: pollAttempts,
	}
}

func (im *impl) InitiateFee(c bCtx.Ctx, productId domain.ProductId, payerId domain.UserId, payerHandle string) (*payment.FeePayment, error) {
	if productId == "" || payerId.IsEmpty() || payerHandle == "" {
		return nil, domain.ErrBadParamInput
	}

	now := timeNow()
	p := &payment.FeePayment{
		Reference:   domain.PaymentRef(uuid.New().String()),
		ProductId:   productId,
		PayerId:     payerId,
		PayerHandle: payerHandle,
		Amount:      im.feeAmount,
		Status:      payment.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := im.repo.Insert(c, p); err != nil {
		return nil, err
	}

	if err := im.gateway.RequestCollection(c, payerHandle, p.Amount, p.Reference); err != nil {
		c.WithFields(log.Fields{"err": err, "reference": p.Reference}).Error("gateway.RequestCollection failed")
		im.met.BumpSum("collection.err", 1)
		im.markFailed(c, p)
		return nil, xerrors.Errorf("request collection: %w", domain.ErrPaymentFailed)
	}

	im.met.BumpSum("collection.initiated", 1)
	return p, nil
}

// ConfirmFee polls the provider until the payment reaches a final state.
// Polling is bounded; a payment still pending after the budget reports
// ErrPaymentFailed but stays pending in the store so a later confirm can
// pick it up.
func (im *impl) ConfirmFee(c bCtx.Ctx, reference domain.PaymentRef) (*payment.FeePayment, error) {
	p, err := im.repo.FindOne(c, reference)
	if err != nil {
		return nil, err
	}
	if p.Status.IsFinal() {
		if p.Status == payment.StatusFailed {
			return p, domain.ErrPaymentFailed
		}
		return p, nil
	}

	defer im.met.BumpTime("confirm.poll.time").End()

	b := backoff.NewConstant(im.pollInterval)
	for i := 0; i < im.pollAttempts; i++ {
		status, err := im.gateway.GetCollectionStatus(c, reference)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "reference": reference}).Error("gateway.GetCollectionStatus failed")
			return nil, err
		}

		if status.IsFinal() {
			p.Status = status
			p.UpdatedAt = timeNow()
			if err := im.repo.Update(c, reference, &payment.Updater{
				Status:    status,
				UpdatedAt: p.UpdatedAt,
			}); err != nil {
				return nil, err
			}

			if status == payment.StatusFailed {
				im.met.BumpSum("collection.failed", 1)
				return p, domain.ErrPaymentFailed
			}
			im.met.BumpSum("collection.succeeded", 1)
			return p, nil
		}

		if err := b.Backoff(c); err != nil {
			return nil, err
		}
	}

	im.met.BumpSum("confirm.poll.exhausted", 1)
	return p, xerrors.Errorf("still pending after %d polls: %w", im.pollAttempts, domain.ErrPaymentFailed)
}

func (im *impl) HasPaidFee(c bCtx.Ctx, productId domain.ProductId, payerId domain.UserId) (bool, error) {
	if _, err := im.repo.FindSuccessful(c, productId, payerId); err != nil {
		if err == domain.ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (im *impl) Disburse(c bCtx.Ctx, payeeHandle string, amount int64) (domain.PaymentRef, error) {
	if payeeHandle == "" || amount <= 0 {
		return "", domain.ErrBadParamInput
	}

	ref := domain.PaymentRef(uuid.New().String())
	if err := im.gateway.RequestDisbursement(c, payeeHandle, amount, ref); err != nil {
		c.WithFields(log.Fields{"err": err, "reference": ref}).Error("gateway.RequestDisbursement failed")
		im.met.BumpSum("disbursement.err", 1)
		return "", xerrors.Errorf("request disbursement: %w", domain.ErrPaymentFailed)
	}
	im.met.BumpSum("disbursement.initiated", 1)
	return ref, nil
}

func (im *impl) markFailed(c bCtx.Ctx, p *payment.FeePayment) {
	p.Status = payment.StatusFailed
	p.UpdatedAt = timeNow()
	if err := im.repo.Update(c, p.Reference, &payment.Updater{
		Status:    payment.StatusFailed,
		UpdatedAt: p.UpdatedAt,
	}); err != nil {
		c.WithFields(log.Fields{"err": err, "reference": p.Reference}).Error("repo.Update failed")
	}
}
