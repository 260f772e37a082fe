package service

import (
	"context"
	"testing"
	"time"

	"mfgtrack/internal/config"
	"mfgtrack/internal/model"
	"mfgtrack/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) UserService {
	t.Helper()
	db := setupTestDB(t)
	cfg := &config.Config{JWTSecret: "test_secret", TokenTTL: time.Hour}
	return NewUserService(repository.NewUserRepository(db), cfg)
}

func TestCreateUserAndLogin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "planner",
		FullName: "Pat Planner",
		Password: "secret123",
		Role:     model.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, "planner", created.Username)
	assert.Equal(t, model.RoleManager, created.Role)

	resp, err := svc.Login(ctx, LoginRequest{Username: "planner", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test_secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, created.ID.String(), claims["sub"])
	assert.Equal(t, model.RoleManager, claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserRequest{Username: "planner", Password: "secret123", Role: model.RoleManager})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Username: "planner", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "invalid username or password", err.Error())

	_, err = svc.Login(ctx, LoginRequest{Username: "ghost", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, "invalid username or password", err.Error())
}

func TestCreateUserValidation(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserRequest{Username: "x", Password: "secret123", Role: "OPERATOR"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role")

	_, err = svc.CreateUser(ctx, CreateUserRequest{Username: "dup", Password: "secret123", Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, CreateUserRequest{Username: "dup", Password: "secret456", Role: model.RoleManager})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestDeleteUserSelfRejected(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	admin, err := svc.CreateUser(ctx, CreateUserRequest{Username: "admin", Password: "secret123", Role: model.RoleAdmin})
	require.NoError(t, err)
	other, err := svc.CreateUser(ctx, CreateUserRequest{Username: "other", Password: "secret123", Role: model.RoleManager})
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, admin.ID.String(), admin.ID.String())
	require.ErrorIs(t, err, ErrSelfDelete)

	// Deleting someone else still works
	require.NoError(t, svc.DeleteUser(ctx, admin.ID.String(), other.ID.String()))
	_, err = svc.GetUserByID(ctx, other.ID.String())
	require.Error(t, err)
}

func TestUpdateUserRole(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserRequest{Username: "planner", Password: "secret123", Role: model.RoleManager})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, u.ID.String(), UpdateUserRequest{Role: model.RoleAdmin, FullName: "Pat P."})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)
	assert.Equal(t, "Pat P.", updated.FullName)

	_, err = svc.UpdateUser(ctx, u.ID.String(), UpdateUserRequest{Role: "INTERN"})
	require.Error(t, err)
}
