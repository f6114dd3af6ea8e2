package momo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/payment"
)

type momoSuite struct {
	suite.Suite

	server *httptest.Server
	mux    *http.ServeMux
	im     Client

	tokenCalls int
}

func TestMomoSuite(t *testing.T) {
	suite.Run(t, new(momoSuite))
}

func (s *momoSuite) SetupTest() {
	s.tokenCalls = 0
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/collection/token/", func(w http.ResponseWriter, r *http.Request) {
		s.tokenCalls++
		user, key, ok := r.BasicAuth()
		s.True(ok)
		s.Equal("api-user", user)
		s.Equal("api-key", key)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok",
			"expires_in":   3600,
		})
	})
	s.server = httptest.NewServer(s.mux)
	s.im = NewClient(&ClientCfg{
		HttpClient:        http.Client{},
		Timeout:           time.Second,
		BaseURL:           s.server.URL,
		CollectionKey:     "coll-key",
		DisbursementKey:   "disb-key",
		ApiUser:           "api-user",
		ApiKey:            "api-key",
		TargetEnvironment: "sandbox",
		Currency:          "RWF",
	})
}

func (s *momoSuite) TearDownTest() {
	s.server.Close()
}

func (s *momoSuite) TestRequestCollection() {
	ref := domain.PaymentRef("11111111-2222-3333-4444-555555555555")

	s.mux.HandleFunc("/collection/v1_0/requesttopay", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("POST", r.Method)
		s.Equal("Bearer tok", r.Header.Get("Authorization"))
		s.Equal("coll-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		s.Equal("sandbox", r.Header.Get("X-Target-Environment"))
		s.Equal(string(ref), r.Header.Get("X-Reference-Id"))

		var body map[string]interface{}
		s.NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal("500", body["amount"])
		s.Equal("RWF", body["currency"])
		payer := body["payer"].(map[string]interface{})
		s.Equal("MSISDN", payer["partyIdType"])
		s.Equal("250788123456", payer["partyId"])

		w.WriteHeader(http.StatusAccepted)
	})

	s.NoError(s.im.RequestCollection(bCtx.Background(), "250788123456", 500, ref))
}

func (s *momoSuite) TestTokenIsReused() {
	s.mux.HandleFunc("/collection/v1_0/requesttopay", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	c := bCtx.Background()
	s.NoError(s.im.RequestCollection(c, "250788123456", 500, "ref-1"))
	s.NoError(s.im.RequestCollection(c, "ref-2", 500, "ref-2"))
	s.Equal(1, s.tokenCalls)
}

func (s *momoSuite) TestGetCollectionStatus() {
	s.mux.HandleFunc("/collection/v1_0/requesttopay/", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("GET", r.Method)
		json.NewEncoder(w).Encode(map[string]string{"status": "SUCCESSFUL"})
	})

	status, err := s.im.GetCollectionStatus(bCtx.Background(), "some-ref")
	s.NoError(err)
	s.Equal(payment.StatusSuccessful, status)
}

func (s *momoSuite) TestRequestDisbursement() {
	s.mux.HandleFunc("/disbursement/token/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "disb-tok",
			"expires_in":   3600,
		})
	})
	s.mux.HandleFunc("/disbursement/v1_0/transfer", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("Bearer disb-tok", r.Header.Get("Authorization"))
		s.Equal("disb-key", r.Header.Get("Ocp-Apim-Subscription-Key"))

		var body map[string]interface{}
		s.NoError(json.NewDecoder(r.Body).Decode(&body))
		payee := body["payee"].(map[string]interface{})
		s.Equal("250788999888", payee["partyId"])

		w.WriteHeader(http.StatusAccepted)
	})

	s.NoError(s.im.RequestDisbursement(bCtx.Background(), "250788999888", 1500, "payout-ref"))
}

func (s *momoSuite) TestCollectionRejected() {
	s.mux.HandleFunc("/collection/v1_0/requesttopay", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := s.im.RequestCollection(bCtx.Background(), "250788123456", 500, "ref")
	s.Equal(ErrStatusCodeNotOk, err)
}
