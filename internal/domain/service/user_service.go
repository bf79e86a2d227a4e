package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/storecore/commerce/internal/domain/entity"
	"github.com/storecore/commerce/internal/domain/errs"
	"github.com/storecore/commerce/internal/domain/repository"
	"github.com/storecore/commerce/internal/domain/valueobject"
)

// errInvalidCredentials is returned for unknown email, wrong password
// and deactivated accounts alike, so callers cannot enumerate users.
func errInvalidCredentials() error {
	return errs.New(errs.Authentication, "invalid credentials")
}

// UserService enforces account workflow rules: email uniqueness,
// credential verification and the activation/verification lifecycle.
type UserService struct {
	users  repository.UserRepository
	logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Register creates a new active, unverified user after checking email
// uniqueness.
func (s *UserService) Register(ctx context.Context, firstName, lastName string, email valueobject.Email, password valueobject.Password, role valueobject.Role) (*entity.User, error) {
	u, err := entity.NewUser(firstName, lastName, email, password, role)
	if err != nil {
		return nil, err
	}
	taken, err := s.users.ExistsByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.Newf(errs.Validation, "email %s is already registered", email)
	}

	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies the credentials and records the login time.
// The failure is identical whether the email is unknown, the password
// is wrong, or the account is deactivated.
func (s *UserService) Authenticate(ctx context.Context, email valueobject.Email, plainPassword string) (*entity.User, error) {
	u, err := s.users.GetByEmail(ctx, email.String())
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errInvalidCredentials()
		}
		return nil, err
	}
	if !u.Active || !u.Password.Matches(plainPassword) {
		return nil, errInvalidCredentials()
	}

	u.RecordLogin(time.Now().UTC())
	u.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfile changes the user's name.
func (s *UserService) UpdateProfile(ctx context.Context, id, firstName, lastName string) (*entity.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := entity.NewUser(firstName, lastName, u.Email, u.Password, u.Role)
	if err != nil {
		return nil, err
	}
	u.FirstName = updated.FirstName
	u.LastName = updated.LastName
	u.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangeEmail replaces the address after re-checking uniqueness. The
// new address starts unverified.
func (s *UserService) ChangeEmail(ctx context.Context, id string, email valueobject.Email) (*entity.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Email.Equal(email) {
		return u, nil
	}
	taken, err := s.users.ExistsByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.Newf(errs.Validation, "email %s is already registered", email)
	}

	u.Email = email
	u.EmailVerified = false
	u.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword accepts the new password only after the current one
// verifies.
func (s *UserService) ChangePassword(ctx context.Context, id, currentPlain, newPlain string) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !u.Password.Matches(currentPlain) {
		return errs.New(errs.Authentication, "current password does not match")
	}
	pwd, err := valueobject.NewPasswordFromPlain(newPlain)
	if err != nil {
		return err
	}
	u.Password = pwd
	u.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, u)
}

func (s *UserService) ChangeRole(ctx context.Context, id string, role valueobject.Role) (*entity.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.ChangeRole(role); err != nil {
		return nil, err
	}
	u.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"user_id": id, "role": role.String()}).Info("user role changed")
	return u, nil
}

func (s *UserService) Activate(ctx context.Context, id string) error {
	return s.setActive(ctx, id, true)
}

func (s *UserService) Deactivate(ctx context.Context, id string) error {
	return s.setActive(ctx, id, false)
}

func (s *UserService) setActive(ctx context.Context, id string, active bool) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if active {
		u.Activate()
	} else {
		u.Deactivate()
	}
	u.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, u)
}

func (s *UserService) VerifyEmail(ctx context.Context, id string) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.VerifyEmail()
	u.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, u)
}

func (s *UserService) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return s.users.GetByID(ctx, id)
}
