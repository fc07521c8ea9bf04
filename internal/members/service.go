package members

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"golang.org/x/text/unicode/norm"
)

// MemberStore is what the service needs from the Members table; *Store
// implements it, tests substitute a fake.
type MemberStore interface {
	NextID(ctx context.Context) (int64, error)
	Insert(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, memberID int64) (*Member, error)
	GetByLogin(ctx context.Context, memberID int64, name string) (*Member, error)
	List(ctx context.Context) ([]Member, error)
}

// TokenIssuer mints the session token handed out after a member login;
// platform/auth.Service implements it.
type TokenIssuer interface {
	IssueToken(subject, role string) (string, error)
}

type Service struct {
	store  MemberStore
	tokens TokenIssuer
}

func NewService(db *sql.DB, tokens TokenIssuer) *Service {
	return &Service{store: NewStore(db), tokens: tokens}
}

// NextMemberID previews the id Register would assign.
func (s *Service) NextMemberID(ctx context.Context) (int64, error) {
	return s.store.NextID(ctx)
}

// Register validates and inserts one member. The primary key enforces
// uniqueness; a duplicate id surfaces as CONFLICT from the insert rather
// than a separate pre-check.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*MemberResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalid("name is required")
	}

	contact := normalizeContact(req.Contact)
	if !isTenDigits(contact) {
		return nil, ErrInvalid("contact must be a 10-digit number")
	}
	if req.ContactConfirm != nil && normalizeContact(*req.ContactConfirm) != contact {
		return nil, ErrInvalid("contact numbers do not match")
	}

	memberID := req.MemberID
	if memberID < 0 {
		return nil, ErrInvalid("member_id must be >= 0")
	}
	if memberID == 0 {
		next, err := s.store.NextID(ctx)
		if err != nil {
			return nil, err
		}
		memberID = next
	}

	m := &Member{MemberID: memberID, Name: name, Contact: contact}
	if err := s.store.Insert(ctx, m); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return nil, ErrConflict("member_id already exists")
		}
		return nil, err
	}

	resp := toResponse(m)
	return &resp, nil
}

// Login matches member_id and name exactly and hands out a member token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.MemberID <= 0 {
		return nil, ErrInvalid("member_id must be > 0")
	}
	if req.Name == "" {
		return nil, ErrInvalid("name is required")
	}

	m, err := s.store.GetByLogin(ctx, req.MemberID, req.Name)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrUnauthorized("invalid member_id or name")
	}

	token, err := s.tokens.IssueToken(strconv.FormatInt(m.MemberID, 10), "member")
	if err != nil {
		return nil, err
	}

	return &LoginResponse{MemberResponse: toResponse(m), Token: token}, nil
}

func (s *Service) GetMember(ctx context.Context, memberID int64) (*MemberResponse, error) {
	m, err := s.store.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound("member not found")
	}
	resp := toResponse(m)
	return &resp, nil
}

func (s *Service) ListMembers(ctx context.Context) ([]MemberResponse, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MemberResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return out, nil
}

// ---- helpers ----

// normalizeContact folds full-width digits to ASCII (NFKC) and strips
// surrounding whitespace, so numbers typed with an IME still validate.
func normalizeContact(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
