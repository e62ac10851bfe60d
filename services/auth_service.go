package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"backend/entity"
	"backend/repository"
	"backend/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidActivationCode = errors.New("invalid activation token")
)

type AuthService struct {
	Users     *repository.UserRepository
	Mailer    Mailer
	jwtSecret string
	jwtTTL    time.Duration
	baseURL   string
}

func NewAuthService(users *repository.UserRepository, mailer Mailer, secret string, ttl time.Duration, baseURL string) *AuthService {
	return &AuthService{Users: users, Mailer: mailer, jwtSecret: secret, jwtTTL: ttl, baseURL: baseURL}
}

// Register creates the account and fires the activation email. The send is
// best-effort: registration succeeds even when the mail does not go out.
func (s *AuthService) Register(email, password, fullName string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	count, err := s.Users.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:           email,
		Password:        string(hashed),
		FullName:        strings.TrimSpace(fullName),
		Role:            entity.RoleCustomer,
		ActivationToken: uuid.NewString(),
	}
	if err := s.Users.Create(user); err != nil {
		return nil, err
	}

	go func(u entity.User) {
		link := fmt.Sprintf("%s/auth/activate?token=%s", s.baseURL, u.ActivationToken)
		_ = s.Mailer.Send(u.Email, "Activate your account",
			"Welcome to the restaurant! Activate your account: "+link)
	}(*user)

	return user, nil
}

// Login verifies the password and issues an access token.
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Activate flips the account to activated when the token matches.
func (s *AuthService) Activate(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidActivationCode
	}
	user, err := s.Users.FindByActivationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidActivationCode
		}
		return err
	}
	return s.Users.Update(user.ID, map[string]any{
		"is_account_activated": true,
		"activation_token":     "",
	})
}

func (s *AuthService) Profile(userID uint) (*entity.User, error) {
	u, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile changes the mutable profile fields.
func (s *AuthService) UpdateProfile(userID uint, fullName string) (*entity.User, error) {
	if err := s.Users.Update(userID, map[string]any{"full_name": strings.TrimSpace(fullName)}); err != nil {
		return nil, err
	}
	return s.Profile(userID)
}
