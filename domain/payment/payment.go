package payment

import (
	"time"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/domain"
)

// Status is the provider-side state of a mobile money transaction
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusSuccessful Status = "SUCCESSFUL"
	StatusFailed     Status = "FAILED"
)

func (s Status) IsFinal() bool {
	return s == StatusSuccessful || s == StatusFailed
}

// FeePayment records a bidding-fee collection. One successful payment per
// (productId, payerId) unlocks bidding on that product for the payer.
type FeePayment struct {
	Reference   domain.PaymentRef `json:"reference" bson:"reference"`
	ProductId   domain.ProductId  `json:"productId" bson:"productId"`
	PayerId     domain.UserId     `json:"payerId" bson:"payerId"`
	PayerHandle string            `json:"payerHandle" bson:"payerHandle"`
	Amount      int64             `json:"amount" bson:"amount"`
	Status      Status            `json:"status" bson:"status"`
	CreatedAt   time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt" bson:"updatedAt"`
}

type Updater struct {
	Status    Status    `bson:"status,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty"`
}

// Gateway is the mobile money provider surface used by the fee usecase.
// referenceId correlates retries of the same transaction on the provider side.
type Gateway interface {
	RequestCollection(ctx ctx.Ctx, payerHandle string, amount int64, referenceId domain.PaymentRef) error
	GetCollectionStatus(ctx ctx.Ctx, referenceId domain.PaymentRef) (Status, error)
	RequestDisbursement(ctx ctx.Ctx, payeeHandle string, amount int64, referenceId domain.PaymentRef) error
}

type Repo interface {
	Insert(ctx ctx.Ctx, p *FeePayment) error
	FindOne(ctx ctx.Ctx, reference domain.PaymentRef) (*FeePayment, error)
	Update(ctx ctx.Ctx, reference domain.PaymentRef, updater *Updater) error
	// FindSuccessful returns domain.ErrNotFound when the payer has no
	// successful fee payment for the product.
	FindSuccessful(ctx ctx.Ctx, productId domain.ProductId, payerId domain.UserId) (*FeePayment, error)
}

// FeeChecker is the slice of the payment usecase consumed by bid placement
type FeeChecker interface {
	HasPaidFee(ctx ctx.Ctx, productId domain.ProductId, payerId domain.UserId) (bool, error)
}

type Usecase interface {
	FeeChecker
	// InitiateFee persists a pending payment and asks the provider to
	// collect the bidding fee from the payer's mobile money account.
	InitiateFee(ctx ctx.Ctx, productId domain.ProductId, payerId domain.UserId, payerHandle string) (*FeePayment, error)
	// ConfirmFee polls the provider until the payment reaches a final
	// state or the bounded polling budget runs out.
	ConfirmFee(ctx ctx.Ctx, reference domain.PaymentRef) (*FeePayment, error)
	Disburse(ctx ctx.Ctx, payeeHandle string, amount int64) (domain.PaymentRef, error)
}
