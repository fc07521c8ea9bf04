package auth

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrAuthFailed    = errors.New("authentication failed")
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"

	tokenTTL = 24 * time.Hour
)

type Service struct {
	store  AdminStore
	secret []byte
}

func NewService(db *sql.DB, secret []byte) *Service {
	return &Service{store: NewStore(db), secret: secret}
}

// Login validates admin credentials and returns a signed token.
// Accounts created through Register store bcrypt hashes; rows inserted by the
// legacy tooling hold plaintext, which still compares (constant time) so
// existing data keeps working until it is rehashed.
func (s *Service) Login(ctx context.Context, username, password string) (string, *Admin, error) {
	acct, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if acct == nil {
		return "", nil, ErrAuthFailed
	}

	if strings.HasPrefix(acct.Password, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(password)); err != nil {
			return "", nil, ErrAuthFailed
		}
	} else if subtle.ConstantTimeCompare([]byte(acct.Password), []byte(password)) != 1 {
		return "", nil, ErrAuthFailed
	}

	token, err := s.IssueToken(acct.Username, RoleAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, acct, nil
}

func (s *Service) Register(ctx context.Context, username, password, name, email string) error {
	exists, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists != nil {
		return ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.store.Create(ctx, &Admin{
		Username: username,
		Password: string(hash),
		Name:     name,
		Email:    email,
	})
}

// ListAccounts returns every admin row. Callers must not expose the
// password column.
func (s *Service) ListAccounts(ctx context.Context) ([]Admin, error) {
	return s.store.List(ctx)
}

// IssueToken signs a HS256 token with sub/role claims. Also used by the
// members package after a successful member login.
func (s *Service) IssueToken(subject, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(s.secret)
}
