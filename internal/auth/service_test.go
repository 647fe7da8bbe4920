package auth

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/gilberthappi/isange-pro-be/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memoryUserStore struct {
	users map[primitive.ObjectID]*User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: map[primitive.ObjectID]*User{}}
}

func (m *memoryUserStore) Create(_ context.Context, user *User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrEmailTaken
		}
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memoryUserStore) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *memoryUserStore) FindAll(_ context.Context) ([]*User, error) {
	var out []*User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memoryUserStore) FindByRole(_ context.Context, role Role) ([]*User, error) {
	var out []*User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memoryUserStore) Delete(_ context.Context, id primitive.ObjectID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	delete(m.users, id)
	return u, nil
}

func (m *memoryUserStore) UpdateRole(_ context.Context, id primitive.ObjectID, role Role) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u.Role = role
	return u, nil
}

func (m *memoryUserStore) SetResetCode(_ context.Context, id primitive.ObjectID, otpHash string, expiresAt time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.OTPHash = otpHash
	u.OTPExpiresAt = &expiresAt
	return nil
}

func (m *memoryUserStore) SetPassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.OTPHash = ""
	u.OTPExpiresAt = nil
	return nil
}

type sentEmail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type recordingMailer struct {
	sent []sentEmail
	err  error
}

func (r *recordingMailer) SendEmail(_ context.Context, to, subject, textBody, htmlBody string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sentEmail{To: to, Subject: subject, Text: textBody, HTML: htmlBody})
	return nil
}

func newTestUserService(store UserStore, mailer config.Mailer) *UserService {
	return &UserService{
		repo:   store,
		tokens: NewTokenManager([]byte("test-key"), time.Hour),
		mailer: mailer,
		log:    zap.NewNop().Sugar(),
	}
}

func TestSignupDefaultsToUserRole(t *testing.T) {
	store := newMemoryUserStore()
	mailer := &recordingMailer{}
	svc := newTestUserService(store, mailer)

	token, user, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleUser, user.Role)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	claims, err := svc.tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, RoleUser, claims.Role)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jane@example.com", mailer.sent[0].To)
	assert.Equal(t, "Welcome to ISANGE PRO", mailer.sent[0].Subject)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestUserService(store, &recordingMailer{})

	_, _, err := svc.Signup(context.Background(), SignupRequest{Email: "jane@example.com", Password: "a"})
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), SignupRequest{Email: "jane@example.com", Password: "b"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupSurvivesMailerFailure(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestUserService(store, &recordingMailer{err: assert.AnError})

	token, user, err := svc.Signup(context.Background(), SignupRequest{Email: "jane@example.com", Password: "a"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotNil(t, user)
}

func TestLogin(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestUserService(store, &recordingMailer{})

	_, created, err := svc.Signup(context.Background(), SignupRequest{Email: "jane@example.com", Password: "s3cret", Role: "agent"})
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), LoginRequest{Email: "jane@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	claims, err := svc.tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, RoleAgent, claims.Role)

	_, _, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, _, err = svc.Login(context.Background(), LoginRequest{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestForgotPasswordStoresOnlyHashedCode(t *testing.T) {
	store := newMemoryUserStore()
	mailer := &recordingMailer{}
	svc := newTestUserService(store, mailer)

	_, created, err := svc.Signup(context.Background(), SignupRequest{Email: "jane@example.com", Password: "s3cret"})
	require.NoError(t, err)
	mailer.sent = nil

	require.NoError(t, svc.ForgotPassword(context.Background(), "jane@example.com"))

	stored := store.users[created.ID]
	require.NotEmpty(t, stored.OTPHash)
	require.NotNil(t, stored.OTPExpiresAt)

	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].Subject, "OTP")

	// the mailed body carries the plaintext code; it must validate against
	// the stored hash
	code := regexp.MustCompile(`\d{6}`).FindString(mailer.sent[0].Text)
	require.NotEmpty(t, code)
	assert.True(t, OTPValid(stored.OTPHash, code, stored.OTPExpiresAt))
	assert.NotContains(t, stored.OTPHash, code, "store keeps only the hash")
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc := newTestUserService(newMemoryUserStore(), &recordingMailer{})
	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResetPassword(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestUserService(store, &recordingMailer{})

	_, created, err := svc.Signup(context.Background(), SignupRequest{Email: "jane@example.com", Password: "old-pass"})
	require.NoError(t, err)

	// plant a known reset code the way ForgotPassword would
	hash, err := HashPassword("123456")
	require.NoError(t, err)
	require.NoError(t, store.SetResetCode(context.Background(), created.ID, hash, time.Now().Add(OTPWindow)))

	err = svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email: "jane@example.com", OTP: "999999", NewPassword: "new-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidOTP)

	err = svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email: "jane@example.com", OTP: "123456", NewPassword: "new-pass",
	})
	require.NoError(t, err)

	stored := store.users[created.ID]
	assert.True(t, CheckPasswordHash("new-pass", stored.PasswordHash))
	assert.Empty(t, stored.OTPHash, "code is single use")

	// a second attempt with the same code must fail
	err = svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email: "jane@example.com", OTP: "123456", NewPassword: "again",
	})
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestChangePassword(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestUserService(store, &recordingMailer{})

	_, created, err := svc.Signup(context.Background(), SignupRequest{Email: "jane@example.com", Password: "old-pass"})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), created.ID, ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "new-pass",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(context.Background(), created.ID, ChangePasswordRequest{
		CurrentPassword: "old-pass", NewPassword: "new-pass",
	})
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("new-pass", store.users[created.ID].PasswordHash))
}

func TestProvisionForcesRole(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestUserService(store, &recordingMailer{})

	token, user, err := svc.Provision(context.Background(), SignupRequest{
		Email: "agent@example.com", Password: "s3cret", Role: "admin",
	}, RoleAgent)
	require.NoError(t, err)
	assert.Equal(t, RoleAgent, user.Role, "requested role is ignored")

	claims, err := svc.tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, RoleAgent, claims.Role)
}
