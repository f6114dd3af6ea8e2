package momo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/base/log"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/payment"
)

const (
	productCollection   = "collection"
	productDisbursement = "disbursement"

	// refresh the token this long before the provider expires it
	tokenExpiryMargin = 30 * time.Second
)

type accessToken struct {
	value     string
	expiresAt time.Time
}

type client struct {
	client  http.Client
	timeout time.Duration
	cfg     *ClientCfg

	mu     sync.Mutex
	tokens map[string]accessToken
}

func NewClient(cfg *ClientCfg) Client {
	return &client{
		client:  cfg.HttpClient,
		timeout: cfg.Timeout,
		cfg:     cfg,
		tokens:  map[string]accessToken{},
	}
}

func (c *client) subscriptionKey(product string) string {
	if product == productDisbursement {
		return c.cfg.DisbursementKey
	}
	return c.cfg.CollectionKey
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// getToken returns a cached product token, fetching a fresh one when the
// cached token is close to expiry.
func (c *client) getToken(ctx bCtx.Ctx, product string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tok, ok := c.tokens[product]; ok && time.Now().Before(tok.expiresAt.Add(-tokenExpiryMargin)) {
		return tok.value, nil
	}

	url := fmt.Sprintf("%s/%s/token/", c.cfg.BaseURL, product)
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", url, nil)
	if err != nil {
		ctx.WithFields(log.Fields{"url": url, "err": err}).Error("NewRequestWithContext failed")
		return "", err
	}
	req.SetBasicAuth(c.cfg.ApiUser, c.cfg.ApiKey)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.subscriptionKey(product))

	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{"url": url, "err": err}).Error("client.Do failed")
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{"url": url, "statusCode": resp.StatusCode}).Error("token request not ok")
		return "", ErrStatusCodeNotOk
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{"url": url, "err": err}).Error("failed to read body")
		return "", err
	}

	var tr tokenResp
	if err := json.Unmarshal(body, &tr); err != nil {
		ctx.WithFields(log.Fields{"url": url, "err": err}).Error("failed to decode token")
		return "", err
	}

	c.tokens[product] = accessToken{
		value:     tr.AccessToken,
		expiresAt: time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}
	return tr.AccessToken, nil
}

type party struct {
	PartyIdType string `json:"partyIdType"`
	PartyId     string `json:"partyId"`
}

type transactionReq struct {
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	ExternalId string `json:"externalId"`
	Payer      *party `json:"payer,omitempty"`
	Payee      *party `json:"payee,omitempty"`
	Message    string `json:"payerMessage,omitempty"`
	Note       string `json:"payeeNote,omitempty"`
}

type transactionStatusResp struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func formatAmount(amount int64) string {
	return decimal.NewFromInt(amount).String()
}

func (c *client) RequestCollection(ctx bCtx.Ctx, payerHandle string, amount int64, referenceId domain.PaymentRef) error {
	body := transactionReq{
		Amount:     formatAmount(amount),
		Currency:   c.cfg.Currency,
		ExternalId: string(referenceId),
		Payer:      &party{PartyIdType: "MSISDN", PartyId: payerHandle},
		Message:    "bidding fee",
		Note:       "bidding fee",
	}
	url := fmt.Sprintf("%s/collection/v1_0/requesttopay", c.cfg.BaseURL)
	return c.post(ctx, productCollection, url, referenceId, body)
}

func (c *client) GetCollectionStatus(ctx bCtx.Ctx, referenceId domain.PaymentRef) (payment.Status, error) {
	token, err := c.getToken(ctx, productCollection)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/collection/v1_0/requesttopay/%s", c.cfg.BaseURL, referenceId)
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		ctx.WithFields(log.Fields{"url": url, "err": err}).Error("NewRequestWithContext failed")
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.CollectionKey)
	req.Header.Set("X-Target-Environment", c.cfg.TargetEnvironment)

	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{"url": url, "err": err}).Error("client.Do failed")
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{"url": url, "statusCode": resp.StatusCode}).Error("status request not ok")
		return "", ErrStatusCodeNotOk
	}

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{"url": url, "err": err}).Error("failed to read body")
		return "", err
	}

	var sr transactionStatusResp
	if err := json.Unmarshal(raw, &sr); err != nil {
		ctx.WithFields(log.Fields{"url": url, "err": err}).Error("failed to decode status")
		return "", err
	}

	switch status := payment.Status(sr.Status); status {
	case payment.StatusPending, payment.StatusSuccessful, payment.StatusFailed:
		return status, nil
	default:
		ctx.WithFields(log.Fields{"status": sr.Status, "reason": sr.Reason}).Error("unknown status")
		return "", ErrUnknownStatus
	}
}

func (c *client) RequestDisbursement(ctx bCtx.Ctx, payeeHandle string, amount int64, referenceId domain.PaymentRef) error {
	body := transactionReq{
		Amount:     formatAmount(amount),
		Currency:   c.cfg.Currency,
		ExternalId: string(referenceId),
		Payee:      &party{PartyIdType: "MSISDN", PartyId: payeeHandle},
		Note:       "auction payout",
	}
	url := fmt.Sprintf("%s/disbursement/v1_0/transfer", c.cfg.BaseURL)
	return c.post(ctx, productDisbursement, url, referenceId, body)
}

// post fires a transaction request. The provider accepts it asynchronously
// with 202; the X-Reference-Id header makes retries of the same reference
// idempotent on the provider side.
func (c *client) post(ctx bCtx.Ctx, product, url string, referenceId domain.PaymentRef, body interface{}) error {
	token, err := c.getToken(ctx, product)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		ctx.WithFields(log.Fields{"url": url, "err": err}).Error("failed to marshal body")
		return err
	}

	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		ctx.WithFields(log.Fields{"url": url, "err": err}).Error("NewRequestWithContext failed")
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.subscriptionKey(product))
	req.Header.Set("X-Target-Environment", c.cfg.TargetEnvironment)
	req.Header.Set("X-Reference-Id", string(referenceId))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{"url": url, "err": err}).Error("client.Do failed")
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		ctx.WithFields(log.Fields{"url": url, "statusCode": resp.StatusCode}).Error("transaction request not ok")
		return ErrStatusCodeNotOk
	}
	return nil
}
