package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/schoolworks/campus-api/internal/models"
	appErrors "github.com/schoolworks/campus-api/pkg/errors"
)

type authRepoStub struct {
	users map[string]*models.User
}

func (s authRepoStub) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (s authRepoStub) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func newTestAuthService(t *testing.T, active bool) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	personID := "t5"
	repo := authRepoStub{users: map[string]*models.User{
		"teacher@school.test": {
			ID:           "u1",
			Email:        "teacher@school.test",
			PasswordHash: string(hash),
			FullName:     "Teacher Five",
			Role:         models.RoleTeacher,
			PersonID:     &personID,
			Active:       active,
		},
	}}
	return NewAuthService(repo, nil, nil, AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "campus-api",
	})
}

func TestLoginIssuesTokenWithPersonID(t *testing.T) {
	svc := newTestAuthService(t, true)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "teacher@school.test",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)
	require.NotNil(t, resp.User.PersonID)
	assert.Equal(t, "t5", *resp.User.PersonID)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
	assert.Equal(t, "t5", claims.PersonID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestAuthService(t, true)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "teacher@school.test",
		Password: "wrong",
	})
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc := newTestAuthService(t, true)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@school.test",
		Password: "secret123",
	})
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc := newTestAuthService(t, false)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "teacher@school.test",
		Password: "secret123",
	})
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	issuer := newTestAuthService(t, true)
	resp, err := issuer.Login(context.Background(), models.LoginRequest{
		Email:    "teacher@school.test",
		Password: "secret123",
	})
	require.NoError(t, err)

	verifier := NewAuthService(authRepoStub{}, nil, nil, AuthConfig{AccessTokenSecret: "other-secret"})
	_, err = verifier.ValidateToken(resp.AccessToken)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
