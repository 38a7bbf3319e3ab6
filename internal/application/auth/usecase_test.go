package auth_test

import (
	"context"
	"testing"

	"github.com/jhoicas/sorveteria-estoque/internal/application/auth"
	"github.com/jhoicas/sorveteria-estoque/internal/application/dto"
	"github.com/jhoicas/sorveteria-estoque/internal/domain"
	"github.com/jhoicas/sorveteria-estoque/internal/infrastructure/memory"
	"github.com/jhoicas/sorveteria-estoque/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(
		memory.NewUserRepository(memory.NewStore()),
		auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "sorveteria-estoque"},
	)
}

func TestRegisterYLogin(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Caixa@Sorveteria.com ", Password: "picole123"})
	require.NoError(t, err)
	assert.Equal(t, "operador", u.Role)
	assert.Equal(t, "caixa@sorveteria.com", u.Email)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "caixa@sorveteria.com", Password: "outra-senha"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "caixa@sorveteria.com", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ninguem@sorveteria.com", Password: "picole123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "CAIXA@sorveteria.com", Password: "picole123"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, "operador", role)
}

func TestRegister_Validacion(t *testing.T) {
	uc := newAuth()
	cases := []dto.RegisterRequest{
		{Email: "sem-arroba", Password: "picole123"},
		{Email: "a@b.com", Password: "curta"},
		{Email: "a@b.com", Password: "picole123", Role: "gerente"},
	}
	for _, in := range cases {
		_, err := uc.RegisterUser(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestEnsureAdmin_Idempotente(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, "admin@sorveteria.com", "admin-secret")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "admin@sorveteria.com", "admin-secret")
	require.NoError(t, err)
	assert.False(t, created)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@sorveteria.com", Password: "admin-secret"})
	require.NoError(t, err)
	assert.Equal(t, "admin", out.User.Role)

	created, err = uc.EnsureAdmin(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, created)
}
