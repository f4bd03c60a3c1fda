package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"campaign-pulse/src/helpers"
	"campaign-pulse/src/models"
	"campaign-pulse/src/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryStore is an in-process IUserStore.
type memoryStore struct {
	mu    sync.Mutex
	users map[string]models.MUser
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[string]models.MUser)}
}

func (m *memoryStore) Initialize(context.Context) error { return nil }
func (m *memoryStore) Close() error                     { return nil }

func (m *memoryStore) CreateUser(_ context.Context, u models.MUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return storage.ErrDuplicateEmail
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *memoryStore) GetUserByEmail(_ context.Context, email string) (models.MUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.MUser{}, storage.ErrUserNotFound
}

func (m *memoryStore) GetUserByID(_ context.Context, id string) (models.MUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return models.MUser{}, storage.ErrUserNotFound
}

func newTestService() *Service {
	return NewService(models.MAuthConfig{
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		Issuer:          "campaign-pulse",
		TokenTTLMinutes: 60,
		BcryptCost:      bcrypt.MinCost,
	}, newMemoryStore())
}

func TestRegisterThenLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "  Dana@Example.com ", "Dana", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.NotEqual(t, "s3cretpass", user.PasswordHash)

	logged, err := svc.Login(ctx, "dana@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "not-an-email", "x", "s3cretpass")
	assert.True(t, helpers.IsValidation(err))

	_, err = svc.Register(ctx, "a@b.com", "x", "short")
	assert.True(t, helpers.IsValidation(err))

	_, err = svc.Register(ctx, "Dana <dana@example.com>", "Dana", "s3cretpass")
	assert.True(t, helpers.IsValidation(err))
	_, err = svc.Store.GetUserByEmail(ctx, "dana <dana@example.com>")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestRegisterDefaultsName(t *testing.T) {
	user, err := newTestService().Register(context.Background(), "jo@example.com", "", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, "jo", user.Name)
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "dana@example.com", "Dana", "s3cretpass")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "DANA@example.com", "Dana", "s3cretpass")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.Register(ctx, "dana@example.com", "Dana", "s3cretpass")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "dana@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ghost@example.com", "s3cretpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueAndVerify(t *testing.T) {
	svc := newTestService()
	user := models.MUser{ID: "u1", Email: "dana@example.com", Name: "Dana"}

	token, expires, err := svc.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "dana@example.com", claims.Email)
}

func TestVerifyRejectsExpiredAndForeignTokens(t *testing.T) {
	svc := newTestService()
	user := models.MUser{ID: "u1", Email: "dana@example.com"}

	token, _, err := svc.Issue(user)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.Verify(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	other := newTestService()
	other.secret = []byte("another-secret-another-secret!!")
	foreign, _, err := other.Issue(user)
	require.NoError(t, err)

	_, err = newTestService().Verify(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
