package services

import (
	"context"
	"testing"
	"time"

	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/bennblr/food-app/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t)
	auth := NewAuthService(e.repos.Users, testSecret, time.Hour)
	ctx := context.Background()

	u, err := auth.Register(ctx, &RegisterIn{Email: " Alice@Example.com ", Password: "secret1", Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.NotEqual(t, "secret1", u.Password)

	_, err = auth.Register(ctx, &RegisterIn{Email: "alice@example.com", Password: "another", Name: "A"})
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	token, got, err := auth.Login(ctx, &LoginIn{Email: "ALICE@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	claims, err := utils.ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.RoleUser, claims.Role)

	_, _, err = auth.Login(ctx, &LoginIn{Email: "alice@example.com", Password: "wrong"})
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
	_, _, err = auth.Login(ctx, &LoginIn{Email: "bob@example.com", Password: "secret1"})
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))

	profile, err := auth.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.Name)
	_, err = auth.GetProfile(ctx, 9999)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestSetRole(t *testing.T) {
	e := newEnv(t)
	auth := NewAuthService(e.repos.Users, testSecret, time.Hour)
	ctx := context.Background()
	owner := e.user(t, entity.RoleAppOwner)
	editor := e.user(t, entity.RoleAppEditor)
	target := e.user(t, entity.RoleUser)

	u, err := auth.SetRole(ctx, editor, target.ID, entity.RoleDriver)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDriver, u.Role)

	_, err = auth.SetRole(ctx, editor, target.ID, entity.RoleAppOwner)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	u, err = auth.SetRole(ctx, owner, target.ID, entity.RoleAppOwner)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAppOwner, u.Role)

	_, err = auth.SetRole(ctx, Actor{ID: target.ID, Role: entity.RoleDriver}, editor.ID, entity.RoleUser)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// editor cannot demote an owner
	_, err = auth.SetRole(ctx, editor, owner.ID, entity.RoleUser)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	stored, err := e.repos.Users.FindByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAppOwner, stored.Role)

	// owner can demote another owner (target was promoted above)
	u, err = auth.SetRole(ctx, owner, target.ID, entity.RoleAppEditor)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAppEditor, u.Role)

	_, err = auth.SetRole(ctx, owner, target.ID, "WIZARD")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = auth.SetRole(ctx, owner, 9999, entity.RoleDriver)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
