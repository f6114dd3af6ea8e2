package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type statusSuite struct {
	suite.Suite

	now time.Time
}

func TestStatusSuite(t *testing.T) {
	suite.Run(t, new(statusSuite))
}

func (s *statusSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *statusSuite) TestStatusOf() {
	future := s.now.Add(time.Hour)
	past := s.now.Add(-time.Hour)

	cases := []struct {
		name      string
		expiry    time.Time
		closed    bool
		hasWinner bool
		want      Status
	}{
		{"open before expiry", future, false, false, StatusOpen},
		{"expired after expiry", past, false, false, StatusExpired},
		{"expired exactly at expiry", s.now, false, false, StatusExpired},
		{"manually closed", future, true, false, StatusManuallyClosed},
		{"closed wins over expiry", past, true, false, StatusManuallyClosed},
		{"winner declared", future, true, true, StatusWinnerDeclared},
		{"winner wins over expiry", past, true, true, StatusWinnerDeclared},
	}

	for _, c := range cases {
		s.Equal(c.want, StatusOf(s.now, c.expiry, c.closed, c.hasWinner), c.name)
	}
}

func (s *statusSuite) TestAcceptsBids() {
	s.True(AcceptsBids(s.now, s.now.Add(time.Minute), false))
	s.False(AcceptsBids(s.now, s.now.Add(time.Minute), true))
	s.False(AcceptsBids(s.now, s.now, false))
	s.False(AcceptsBids(s.now, s.now.Add(-time.Minute), false))
}
