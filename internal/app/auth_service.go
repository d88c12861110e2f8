package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/Sandip75/backend-task/internal/model"
	"github.com/Sandip75/backend-task/internal/pkg/jwtutil"
	"github.com/Sandip75/backend-task/internal/repository"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrPasswordPolicy    = errors.New("password must be 12-20 characters with lowercase letters, numbers, and special characters")
	ErrUsernameFormat    = errors.New("username must be 1-10 Korean characters")
	ErrNoUpdateFields    = errors.New("no fields provided")
)

var usernamePattern = regexp.MustCompile(`^[가-힣]{1,10}$`)

const bcryptCost = 10

type AuthService struct {
	userRepo        *repository.UserRepository
	loginRecordRepo *repository.LoginRecordRepository
	publisher       LoginEventPublisher
	jwtSecret       string
	jwtExpiration   time.Duration
}

// LoginEventPublisher hands a login record off for asynchronous persistence.
type LoginEventPublisher interface {
	Publish(ctx context.Context, record model.LoginRecord) error
}

type SignupInput struct {
	ID       string
	Password string
	Username string
}

type LoginInput struct {
	ID       string
	Password string
	IP       string
}

type UpdateUserInput struct {
	Username *string
	Password *string
}

type UpdateUserResult struct {
	ID        string
	Username  string
	UpdatedAt time.Time
}

func NewAuthService(
	userRepo *repository.UserRepository,
	loginRecordRepo *repository.LoginRecordRepository,
	publisher LoginEventPublisher,
	jwtSecret string,
	jwtExpiration time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		loginRecordRepo: loginRecordRepo,
		publisher:       publisher,
		jwtSecret:       jwtSecret,
		jwtExpiration:   jwtExpiration,
	}
}

func (s *AuthService) Signup(input SignupInput) (*model.User, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, ErrInvalidInput
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}
	if !usernamePattern.MatchString(input.Username) {
		return nil, ErrUsernameFormat
	}

	existing, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		ID:           id,
		Username:     input.Username,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a token. The failure never says
// whether the email or the password was wrong.
func (s *AuthService) Login(input LoginInput) (string, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" || input.Password == "" {
		return "", ErrInvalidCredential
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return "", ErrInvalidCredential
	}

	s.recordLogin(user.ID, input.IP)

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) Update(userID string, input UpdateUserInput) (*UpdateUserResult, error) {
	if input.Username == nil && input.Password == nil {
		return nil, ErrNoUpdateFields
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	fields := map[string]interface{}{}
	username := user.Username
	if input.Username != nil {
		if !usernamePattern.MatchString(*input.Username) {
			return nil, ErrUsernameFormat
		}
		fields["username"] = *input.Username
		username = *input.Username
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password failed: %w", err)
		}
		fields["password_hash"] = string(hash)
	}

	if err := s.userRepo.Update(userID, fields); err != nil {
		return nil, err
	}

	return &UpdateUserResult{
		ID:        userID,
		Username:  username,
		UpdatedAt: time.Now(),
	}, nil
}

func (s *AuthService) LoginRecords(userID string) ([]repository.LoginHistoryRow, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.loginRecordRepo.ListRecentByUserID(userID, 30)
}

// recordLogin enqueues the audit record; the login itself must not fail
// over an unavailable broker.
func (s *AuthService) recordLogin(userID, ip string) {
	if s.publisher == nil {
		return
	}
	record := model.LoginRecord{
		UserID:    userID,
		IP:        ip,
		CreatedAt: time.Now(),
	}
	if err := s.publisher.Publish(context.Background(), record); err != nil {
		log.Printf("publish login record failed: %v", err)
	}
}

func validatePassword(password string) error {
	if n := utf8.RuneCountInString(password); n < 12 || n > 20 {
		return ErrPasswordPolicy
	}

	// Character classes are ASCII: anything outside A-Za-z0-9, underscore
	// and non-ASCII letters included, counts as the special character.
	var hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case r < 'A' || r > 'Z':
			hasSymbol = true
		}
	}
	if !hasLower || !hasDigit || !hasSymbol {
		return ErrPasswordPolicy
	}
	return nil
}
