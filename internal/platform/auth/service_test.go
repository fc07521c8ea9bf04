package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminStore struct {
	rows map[string]Admin
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{rows: make(map[string]Admin)}
}

func (f *fakeAdminStore) GetByUsername(_ context.Context, username string) (*Admin, error) {
	a, ok := f.rows[username]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeAdminStore) Create(_ context.Context, a *Admin) error {
	f.rows[a.Username] = *a
	return nil
}

func (f *fakeAdminStore) List(context.Context) ([]Admin, error) {
	out := make([]Admin, 0, len(f.rows))
	for _, a := range f.rows {
		out = append(out, a)
	}
	return out, nil
}

func newTestService(store AdminStore) *Service {
	return &Service{store: store, secret: []byte("test-secret")}
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeAdminStore()
	svc := newTestService(store)

	err := svc.Register(context.Background(), "root", "s3cret", "Root Admin", "root@example.com")
	require.NoError(t, err)

	// the stored password is a bcrypt hash, never the plaintext
	stored := store.rows["root"].Password
	assert.NotEqual(t, "s3cret", stored)
	assert.True(t, len(stored) > 0 && stored[0] == '$')

	token, acct, err := svc.Login(context.Background(), "root", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Root Admin", acct.Name)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "root", claims["sub"])
	assert.Equal(t, RoleAdmin, claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(newFakeAdminStore())

	require.NoError(t, svc.Register(context.Background(), "root", "s3cret", "Root", "r@example.com"))

	_, _, err := svc.Login(context.Background(), "root", "wrong")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestService(newFakeAdminStore())

	_, _, err := svc.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

// Rows inserted by the legacy tooling hold plaintext passwords; logins
// against them must keep working until they are rehashed.
func TestLoginLegacyPlaintextRow(t *testing.T) {
	store := newFakeAdminStore()
	store.rows["legacy"] = Admin{Username: "legacy", Password: "oldpass", Name: "Legacy", Email: "l@example.com"}
	svc := newTestService(store)

	_, acct, err := svc.Login(context.Background(), "legacy", "oldpass")
	require.NoError(t, err)
	assert.Equal(t, "Legacy", acct.Name)

	_, _, err = svc.Login(context.Background(), "legacy", "nope")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(newFakeAdminStore())

	require.NoError(t, svc.Register(context.Background(), "root", "a", "A", "a@example.com"))
	err := svc.Register(context.Background(), "root", "b", "B", "b@example.com")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}
