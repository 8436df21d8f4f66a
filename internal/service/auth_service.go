package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"rentdesk/config"
	"rentdesk/internal/auth"
	"rentdesk/internal/domain"
	"rentdesk/internal/models"
	"rentdesk/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     string
	Phone    string
	Country  string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Role:         in.Role,
		Phone:        in.Phone,
		Country:      strings.ToUpper(in.Country),
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, "", err
	}
	token, err := auth.GenerateToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return u, "", err
	}
	return u, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	now := time.Now()
	_ = s.userRepo.UpdateFields(ctx, u.ID, map[string]interface{}{"last_login_at": now})
	u.LastLoginAt = &now
	token, err := auth.GenerateToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	return u, nil
}

type ProfileInput struct {
	FullName string
	Phone    string
	Bio      string
}

// UpdateProfile lets a user (or an admin) edit a profile. The first uploaded
// image becomes the profile picture.
func (s *AuthService) UpdateProfile(ctx context.Context, actorID, actorRole, targetID string, in ProfileInput, images []string) (*models.User, error) {
	if actorID != targetID && actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	u, err := s.GetUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if in.FullName != "" {
		u.FullName = in.FullName
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if in.Bio != "" {
		u.Bio = in.Bio
	}
	if len(images) > 0 {
		u.ProfileURL = images[0]
	}
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
