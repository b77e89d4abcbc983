package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sfss/internal/domain/user"
	apperrors "sfss/pkg/errors"
	"sfss/pkg/password"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, input user.CreateUserInput) (*user.User, error) {
	if _, ok := r.users[input.Email]; ok {
		return nil, &apperrors.AppError{
			Code:    "EMAIL_EXISTS",
			Message: "email already exists",
			Err:     apperrors.ErrEmailExists,
		}
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	r.users[input.Email] = u
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return u, nil
}

type staticTokenGenerator struct{}

func (staticTokenGenerator) Generate(_ uuid.UUID, _ string) (string, error) {
	return "test-token", nil
}

func newAuthTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup(t *testing.T) {
	repo := newFakeUserRepo()
	h := NewAuthHandler(repo, staticTokenGenerator{}, nil)

	c, rec := newAuthTestContext(t, `{"email":"alice@example.com","password":"S3cure-pass-word"}`)
	require.NoError(t, h.Signup(c))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SignupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, "test-token", resp.Token)
	assert.NotEmpty(t, resp.UserID)
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	h := NewAuthHandler(repo, staticTokenGenerator{}, nil)

	c, _ := newAuthTestContext(t, `{"email":"alice@example.com","password":"S3cure-pass-word"}`)
	require.NoError(t, h.Signup(c))

	c, rec := newAuthTestContext(t, `{"email":"alice@example.com","password":"S3cure-pass-word"}`)
	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_Signup_InvalidInput(t *testing.T) {
	repo := newFakeUserRepo()
	h := NewAuthHandler(repo, staticTokenGenerator{}, nil)

	cases := []struct {
		name string
		body string
	}{
		{"bad email", `{"email":"nope","password":"S3cure-pass-word"}`},
		{"weak password", `{"email":"alice@example.com","password":"123"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newAuthTestContext(t, tc.body)
			require.NoError(t, h.Signup(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	repo := newFakeUserRepo()
	hash, err := password.Hash("S3cure-pass-word")
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), user.CreateUserInput{
		Email:        "alice@example.com",
		PasswordHash: hash,
	})
	require.NoError(t, err)

	h := NewAuthHandler(repo, staticTokenGenerator{}, nil)

	c, rec := newAuthTestContext(t, `{"email":"alice@example.com","password":"S3cure-pass-word"}`)
	require.NoError(t, h.Login(c))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "test-token", resp.Token)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	hash, err := password.Hash("S3cure-pass-word")
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), user.CreateUserInput{
		Email:        "alice@example.com",
		PasswordHash: hash,
	})
	require.NoError(t, err)

	h := NewAuthHandler(repo, staticTokenGenerator{}, nil)

	c, rec := newAuthTestContext(t, `{"email":"alice@example.com","password":"wrong-password"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	h := NewAuthHandler(repo, staticTokenGenerator{}, nil)

	c, rec := newAuthTestContext(t, `{"email":"ghost@example.com","password":"whatever-pass"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
