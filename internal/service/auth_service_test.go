package service

import (
	"testing"

	"go-storefront-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture() (*fakeUserRepo, AuthService) {
	userRepo := newFakeUserRepo()
	return userRepo, NewAuthService(userRepo, zap.NewNop())
}

func TestRegisterDefaultsToCustomer(t *testing.T) {
	_, svc := newAuthFixture()

	resp, err := svc.Register("Jane Doe", "jane@example.com", "s3cretpass", "")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleCustomer, resp.User.Role)
	assert.Equal(t, "jane@example.com", resp.User.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.Register("Jane", "jane@example.com", "s3cretpass", "")
	require.NoError(t, err)

	_, err = svc.Register("Other Jane", "jane@example.com", "differentpass", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.Register("Jane", "jane@example.com", "s3cretpass", "superadmin")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterAcceptsSupplierRole(t *testing.T) {
	_, svc := newAuthFixture()

	resp, err := svc.Register("Acme", "acme@example.com", "s3cretpass", model.RoleSupplier)
	require.NoError(t, err)
	assert.Equal(t, model.RoleSupplier, resp.User.Role)
}

func TestPasswordIsNeverStoredInPlaintext(t *testing.T) {
	userRepo, svc := newAuthFixture()

	_, err := svc.Register("Jane", "jane@example.com", "s3cretpass", "")
	require.NoError(t, err)

	stored, err := userRepo.FindByEmail("jane@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", stored.Password)
	assert.True(t, stored.CheckPassword("s3cretpass"))
}

func TestLoginIndistinguishableFailures(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.Register("Jane", "jane@example.com", "s3cretpass", "")
	require.NoError(t, err)

	// Wrong password and unknown email must produce the same error
	_, errWrongPass := svc.Login("jane@example.com", "wrongpass")
	_, errNoAccount := svc.Login("nobody@example.com", "s3cretpass")

	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, errNoAccount, ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errNoAccount.Error())
}

func TestLoginReturnsToken(t *testing.T) {
	_, svc := newAuthFixture()

	reg, err := svc.Register("Jane", "jane@example.com", "s3cretpass", "")
	require.NoError(t, err)

	resp, err := svc.Login("jane@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, reg.User.ID, resp.User.ID)
}

func TestResolveOAuthAccountUpserts(t *testing.T) {
	userRepo, svc := newAuthFixture()

	first, err := svc.ResolveOAuthAccount("Jane Doe", "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, first.User.Role)

	// Second resolve reuses the account instead of creating another
	second, err := svc.ResolveOAuthAccount("Jane Doe", "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	users, err := userRepo.FindByRole(model.RoleCustomer)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestResolveOAuthAccountKeepsExistingRole(t *testing.T) {
	userRepo, svc := newAuthFixture()

	admin := &model.User{Name: "Admin", Email: "admin@example.com", Role: model.RoleAdmin}
	require.NoError(t, admin.SetPassword("adminpass"))
	userRepo.add(admin)

	resp, err := svc.ResolveOAuthAccount("Admin", "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)
}
