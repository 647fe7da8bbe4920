package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gilberthappi/isange-pro-be/internal/config"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrWrongPassword = errors.New("wrong password")
	ErrInvalidOTP    = errors.New("invalid or expired OTP")
)

// UserStore is the slice of the repository the service needs.
type UserStore interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	FindByRole(ctx context.Context, role Role) ([]*User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*User, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role Role) (*User, error)
	SetResetCode(ctx context.Context, id primitive.ObjectID, otpHash string, expiresAt time.Time) error
	SetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}

type UserService struct {
	repo   UserStore
	tokens *TokenManager
	mailer config.Mailer
	log    *zap.SugaredLogger
}

func NewUserService(repo *UserRepository, tokens *TokenManager, mailer config.Mailer, log *zap.SugaredLogger) *UserService {
	return &UserService{repo: repo, tokens: tokens, mailer: mailer, log: log}
}

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleAgent, RoleRIB, RoleDoctor, RoleHospital:
		return Role(s), true
	}
	return "", false
}

// Signup registers a new account and returns a token for it. The welcome
// email is best effort and never blocks registration.
func (s *UserService) Signup(ctx context.Context, req SignupRequest) (string, *User, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return "", nil, err
	}

	role := RoleUser
	if r, ok := ParseRole(req.Role); ok {
		role = r
	}

	user := &User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Phone:        req.Phone,
		Location:     req.Location,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", nil, err
	}

	if err := s.mailer.SendEmail(ctx, user.Email, "Welcome to ISANGE PRO",
		"Thank you for signing up with us. We are excited to have you on board.",
		welcomeHTML); err != nil {
		s.log.Errorw("welcome email failed", "email", user.Email, "error", err)
	}

	token, err := s.tokens.Generate(&JWTClaims{
		UserID:   user.ID.Hex(),
		Role:     user.Role,
		Name:     user.Name,
		Phone:    user.Phone,
		Location: user.Location,
	})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) Login(ctx context.Context, req LoginRequest) (string, *User, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrUserNotFound
	}
	if !CheckPasswordHash(req.Password, user.PasswordHash) {
		return "", nil, ErrWrongPassword
	}

	token, err := s.tokens.Generate(&JWTClaims{UserID: user.ID.Hex(), Role: user.Role})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ForgotPassword stores a hashed reset code and emails the plaintext code.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	code, expiresAt, err := GenerateOTP()
	if err != nil {
		return err
	}
	otpHash, err := HashPassword(code)
	if err != nil {
		return err
	}
	if err := s.repo.SetResetCode(ctx, user.ID, otpHash, expiresAt); err != nil {
		return err
	}

	body := fmt.Sprintf("Use this %s to change your password. It is valid for five minutes and will expire at %s.",
		code, expiresAt.Format(time.RFC1123))
	if err := s.mailer.SendEmail(ctx, user.Email, "Password OTP Code Reset", body, ""); err != nil {
		s.log.Errorw("reset email failed", "email", user.Email, "error", err)
		return fmt.Errorf("failed to send reset password email: %w", err)
	}
	return nil
}

// ResetPassword verifies the submitted code against the stored hash and its
// expiry; on success the password is replaced and the code cleared.
func (s *UserService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !OTPValid(user.OTPHash, req.OTP, user.OTPExpiresAt) {
		return ErrInvalidOTP
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.repo.SetPassword(ctx, user.ID, hash)
}

func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, req ChangePasswordRequest) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.repo.SetPassword(ctx, user.ID, hash)
}

// Provision creates an account with a server-forced role. Mirrors the
// original createAgent/createDoctor flow, including the quirk of returning a
// token for the newly created user rather than the admin who made the call.
func (s *UserService) Provision(ctx context.Context, req SignupRequest, role Role) (string, *User, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return "", nil, err
	}
	user := &User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Phone:        req.Phone,
		Location:     req.Location,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Generate(&JWTClaims{
		UserID:   user.ID.Hex(),
		Role:     user.Role,
		Name:     user.Name,
		Phone:    user.Phone,
		Location: user.Location,
	})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) AllClients(ctx context.Context) ([]*User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) UsersByRole(ctx context.Context, role Role) ([]*User, error) {
	return s.repo.FindByRole(ctx, role)
}

func (s *UserService) DeleteUser(ctx context.Context, id primitive.ObjectID) (*User, error) {
	return s.repo.Delete(ctx, id)
}

func (s *UserService) ChangeUserRole(ctx context.Context, id primitive.ObjectID, role Role) (*User, error) {
	return s.repo.UpdateRole(ctx, id, role)
}

const welcomeHTML = `<h1>Welcome to ISANGE PRO</h1>
<p>Thank you for signing up with us. We are excited to have you on board.</p>
<p>Feel free to explore our platform and reach out to us in case of any questions or concerns.</p>
<p>Best Regards,</p>
<p>ISANGE PRO Team</p>`
