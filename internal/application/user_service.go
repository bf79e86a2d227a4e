package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/storecore/commerce/internal/domain/entity"
	"github.com/storecore/commerce/internal/domain/errs"
	domainsvc "github.com/storecore/commerce/internal/domain/service"
	"github.com/storecore/commerce/internal/domain/valueobject"
	"github.com/storecore/commerce/pkg/helpers"
	"github.com/storecore/commerce/pkg/mailer"
)

const (
	sessionTTL     = 24 * time.Hour
	verifyTokenTTL = 48 * time.Hour
)

// UserService is the application boundary for accounts. Sessions live
// in a Redis hash keyed by user id; verification emails go through the
// RabbitMQ queue and are delivered by the email worker.
type UserService struct {
	Domain    *domainsvc.UserService
	JWT       *helpers.JWTManager
	Redis     *redis.Client
	Publisher *helpers.RabbitPublisher
	Logger    *logrus.Logger
	VerifyURL string
}

func NewUserService(domain *domainsvc.UserService, jwt *helpers.JWTManager, rdb *redis.Client, pub *helpers.RabbitPublisher, logger *logrus.Logger, verifyURL string) *UserService {
	return &UserService{Domain: domain, JWT: jwt, Redis: rdb, Publisher: pub, Logger: logger, VerifyURL: verifyURL}
}

// UserView is the plain-data shape of a user crossing the application
// boundary. It never carries password material.
type UserView struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	Active        bool       `json:"active"`
	EmailVerified bool       `json:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toUserView(u *entity.User) *UserView {
	return &UserView{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email.String(),
		Role:          u.Role.String(),
		Active:        u.Active,
		EmailVerified: u.EmailVerified,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

type RegisterCommand struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string    { return "user:session:" + userID }
func verifyTokenKey(token string) string { return "email:verify:token:" + token }

// Register builds the value objects from the command (where malformed
// input surfaces), registers the user, and queues a verification email.
func (s *UserService) Register(ctx context.Context, cmd RegisterCommand) (*UserView, error) {
	const op = "register user"
	email, err := valueobject.NewEmail(cmd.Email)
	if err != nil {
		return nil, opErr(op, err)
	}
	password, err := valueobject.NewPasswordFromPlain(cmd.Password)
	if err != nil {
		return nil, opErr(op, err)
	}
	roleName := cmd.Role
	if roleName == "" {
		roleName = "CUSTOMER"
	}
	role, err := valueobject.NewRole(roleName)
	if err != nil {
		return nil, opErr(op, err)
	}

	u, err := s.Domain.Register(ctx, cmd.FirstName, cmd.LastName, email, password, role)
	if err != nil {
		return nil, opErr(op, err)
	}
	s.queueVerificationEmail(ctx, u)
	return toUserView(u), nil
}

// Login authenticates and issues a token pair, recording the session
// in Redis.
func (s *UserService) Login(ctx context.Context, emailRaw, password string) (*UserView, TokenPair, error) {
	const op = "login"
	email, err := valueobject.NewEmail(emailRaw)
	if err != nil {
		// A malformed address reads the same as bad credentials.
		return nil, TokenPair{}, opErr(op, errs.New(errs.Authentication, "invalid credentials"))
	}
	u, err := s.Domain.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, opErr(op, err)
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, opErr(op, err)
	}
	return toUserView(u), pair, nil
}

func (s *UserService) issueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email.String(),
			"name":       u.FullName(),
			"role":       u.Role.String(),
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, sessionTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("redis session write failed")
		}
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id and both tokens.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	const op = "refresh tokens"
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", opErr(op, errs.New(errs.Authentication, "invalid credentials"))
	}
	u, err := s.Domain.FindByID(ctx, claims.UserID)
	if err != nil || !u.Active {
		return TokenPair{}, "", opErr(op, errs.New(errs.Authentication, "invalid credentials"))
	}
	if s.Redis != nil {
		data, err := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", opErr(op, errs.New(errs.Authentication, "invalid credentials"))
		}
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", opErr(op, err)
	}
	return pair, u.ID, nil
}

// Logout drops the Redis session.
func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("redis session delete failed")
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*UserView, error) {
	const op = "get profile"
	u, err := s.Domain.FindByID(ctx, userID)
	if err != nil {
		return nil, opErr(op, err)
	}
	return toUserView(u), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID, firstName, lastName string) (*UserView, error) {
	const op = "update profile"
	u, err := s.Domain.UpdateProfile(ctx, userID, firstName, lastName)
	if err != nil {
		return nil, opErr(op, err)
	}
	s.refreshSessionName(ctx, u)
	return toUserView(u), nil
}

func (s *UserService) ChangeEmail(ctx context.Context, userID, emailRaw string) (*UserView, error) {
	const op = "change email"
	email, err := valueobject.NewEmail(emailRaw)
	if err != nil {
		return nil, opErr(op, err)
	}
	u, err := s.Domain.ChangeEmail(ctx, userID, email)
	if err != nil {
		return nil, opErr(op, err)
	}
	s.queueVerificationEmail(ctx, u)
	return toUserView(u), nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	const op = "change password"
	if err := s.Domain.ChangePassword(ctx, userID, current, next); err != nil {
		return opErr(op, err)
	}
	return nil
}

func (s *UserService) ChangeRole(ctx context.Context, userID, roleRaw string) (*UserView, error) {
	const op = "change role"
	role, err := valueobject.NewRole(roleRaw)
	if err != nil {
		return nil, opErr(op, err)
	}
	u, err := s.Domain.ChangeRole(ctx, userID, role)
	if err != nil {
		return nil, opErr(op, err)
	}
	return toUserView(u), nil
}

func (s *UserService) Activate(ctx context.Context, userID string) error {
	const op = "activate user"
	if err := s.Domain.Activate(ctx, userID); err != nil {
		return opErr(op, err)
	}
	return nil
}

// Deactivate disables the account and kills any live session.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	const op = "deactivate user"
	if err := s.Domain.Deactivate(ctx, userID); err != nil {
		return opErr(op, err)
	}
	s.Logout(ctx, userID)
	return nil
}

// VerifyEmail consumes a one-shot token minted at registration.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	const op = "verify email"
	if s.Redis == nil {
		return opErr(op, errs.New(errs.Validation, "verification is not configured"))
	}
	userID, err := s.Redis.GetDel(ctx, verifyTokenKey(token)).Result()
	if err == redis.Nil || userID == "" {
		return opErr(op, errs.New(errs.Validation, "invalid or expired verification token"))
	}
	if err != nil {
		return opErr(op, err)
	}
	if err := s.Domain.VerifyEmail(ctx, userID); err != nil {
		return opErr(op, err)
	}
	if u, err := s.Domain.FindByID(ctx, userID); err == nil {
		s.queueWelcomeEmail(ctx, u)
	}
	return nil
}

func (s *UserService) queueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Publisher == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email.String(),
		Template: "welcome",
		Data:     map[string]any{"Name": u.FullName()},
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}

func (s *UserService) queueVerificationEmail(ctx context.Context, u *entity.User) {
	if s.Redis == nil || s.Publisher == nil {
		return
	}
	token, err := randomToken(32)
	if err != nil {
		s.Logger.WithError(err).Warn("verification token generation failed")
		return
	}
	if err := s.Redis.Set(ctx, verifyTokenKey(token), u.ID, verifyTokenTTL).Err(); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("verification token store failed")
		return
	}
	job := mailer.EmailJob{
		To:       u.Email.String(),
		Template: "verify_email",
		Data: map[string]any{
			"Name":      u.FullName(),
			"VerifyURL": s.VerifyURL + "?token=" + token,
		},
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("verification email enqueue failed")
	}
}

func (s *UserService) refreshSessionName(ctx context.Context, u *entity.User) {
	if s.Redis == nil {
		return
	}
	key := sessionKey(u.ID)
	if err := s.Redis.HSet(ctx, key, map[string]any{"name": u.FullName()}).Err(); err != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("redis session update failed")
	}
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
