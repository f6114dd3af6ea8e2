package momo

import (
	"errors"
	"net/http"
	"time"

	bCtx "github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/payment"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status not ok")
	ErrUnknownStatus   = errors.New("unknown transaction status")
)

// Client talks to the MTN MoMo open api. It implements payment.Gateway;
// collection pulls money from a payer, disbursement pushes money to a payee.
type Client interface {
	RequestCollection(ctx bCtx.Ctx, payerHandle string, amount int64, referenceId domain.PaymentRef) error
	GetCollectionStatus(ctx bCtx.Ctx, referenceId domain.PaymentRef) (payment.Status, error)
	RequestDisbursement(ctx bCtx.Ctx, payeeHandle string, amount int64, referenceId domain.PaymentRef) error
}

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	// BaseURL of the provider, e.g. https://sandbox.momodeveloper.mtn.com
	BaseURL string
	// SubscriptionKey is the Ocp-Apim-Subscription-Key of the product
	CollectionKey   string
	DisbursementKey string
	// ApiUser/ApiKey form the basic auth pair of the token endpoint
	ApiUser string
	ApiKey  string
	// TargetEnvironment is "sandbox" or the production country code
	TargetEnvironment string
	Currency          string
}
