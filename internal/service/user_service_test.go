package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/aula/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateAndCheckPassword(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	u, err := env.users.Create(ctx, CreateUserInput{
		Name:     "Ana Lopez",
		Email:    "  Ana.Lopez@Aula.Test ",
		Role:     domain.RoleAdjunctProfessor,
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana.lopez@aula.test", u.Email)
	assert.NotEqual(t, "correct horse", u.PasswordHash)

	got, err := env.users.CheckPassword(ctx, "ana.lopez@aula.test", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = env.users.CheckPassword(ctx, "ana.lopez@aula.test", "wrong")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = env.users.CheckPassword(ctx, "nobody@aula.test", "correct horse")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserService_Create_Validation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.users.Create(ctx, CreateUserInput{Name: "X", Email: "not-an-email", Role: "dean", Password: "short"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	fields := map[string]bool{}
	for _, f := range de.Fields {
		fields[f.Field] = true
	}
	assert.Equal(t, map[string]bool{"email": true, "role": true, "password": true}, fields)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	in := CreateUserInput{Name: "Bruno", Email: "bruno@aula.test", Role: domain.RoleModerator, Password: "longenough"}

	_, err := env.users.Create(ctx, in)
	require.NoError(t, err)

	in.Email = "BRUNO@aula.test"
	_, err = env.users.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserService_ResolveActor(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	prof := env.addUser(t, domain.RoleFullTimeProfessor)

	byID, err := env.users.ResolveActor(ctx, prof.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Actor{UserID: prof.ID, Role: domain.RoleFullTimeProfessor}, byID)

	byEmail, err := env.users.ResolveActor(ctx, prof.Email)
	require.NoError(t, err)
	assert.Equal(t, byID, byEmail)

	_, err = env.users.ResolveActor(ctx, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.users.ResolveActor(ctx, "ghost@aula.test")
	assert.ErrorIs(t, err, domain.ErrUnknownUser)
}
