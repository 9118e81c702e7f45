package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

type RegisterInput struct {
	Username string
	Password string
	Name     string
	Phone    string
	Email    string
	Roles    []string
}

// Register tạo tài khoản mới, mặc định role driver nếu không truyền.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service repo is nil")
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if strings.TrimSpace(in.Password) == "" {
		return nil, fmt.Errorf("password is required")
	}

	salt, err := GenerateSaltHex()
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password, salt)
	if err != nil {
		return nil, err
	}

	roles := in.Roles
	if len(roles) == 0 {
		roles = []string{RoleDriver}
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		PasswordSalt: salt,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Email:        strings.TrimSpace(in.Email),
		Roles:        RolesJoin(roles),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate kiểm tra username/password, trả về user khi hợp lệ.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service repo is nil")
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("invalid credentials")
	}
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !VerifyPassword(password, u.PasswordSalt, u.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials")
	}
	return u, nil
}
