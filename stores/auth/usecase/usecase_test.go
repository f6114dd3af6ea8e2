package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/stores/auth/usecase"
)

func TestSignAndParseToken(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret", 24*time.Hour)

	tkn, err := u.SignToken(ctx, "farmer-1", domain.RoleFarmer)
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)

	userId, role, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, "farmer-1", userId)
	assert.Equal(t, domain.RoleFarmer, role)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret", 24*time.Hour)

	_, _, err := u.ParseToken(ctx, "not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	ctx := ctx.Background()
	signer := usecase.New("secret-a", 24*time.Hour)
	parser := usecase.New("secret-b", 24*time.Hour)

	tkn, err := signer.SignToken(ctx, "buyer-1", domain.RoleBuyer)
	assert.NoError(t, err)

	_, _, err = parser.ParseToken(ctx, tkn)
	assert.Error(t, err)
}

func TestSignTokenValidatesInput(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret", 24*time.Hour)

	_, err := u.SignToken(ctx, "", domain.RoleBuyer)
	assert.Equal(t, domain.ErrBadParamInput, err)

	_, err = u.SignToken(ctx, "user-1", domain.Role("ghost"))
	assert.Equal(t, domain.ErrBadParamInput, err)
}
