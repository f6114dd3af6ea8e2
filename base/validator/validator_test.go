package validator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) TestIsValidMsisdn() {
	tests := []struct {
		desc       string
		msisdn     string
		expIsValid bool
	}{
		{
			desc:       "too short",
			msisdn:     "0781",
			expIsValid: false,
		},
		{
			desc:       "valid rwandan number",
			msisdn:     "250781234567",
			expIsValid: true,
		},
		{
			desc:       "leading zero",
			msisdn:     "078123456789",
			expIsValid: false,
		},
		{
			desc:       "contains letters",
			msisdn:     "25078x234567",
			expIsValid: false,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidMsisdn(t.msisdn), t.desc)
	}
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
