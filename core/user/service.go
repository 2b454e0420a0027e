package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrPasswordTooSimilar = errors.New("password too similar to user attributes")
)

type (
	Repository interface {
		// CheckEmailUniqueness returns ErrEmailExists if a user other than the excluded IDs owns email.
		CheckEmailUniqueness(email string, excludedIDs ...string) error
		// CreateUser and UpdateUser return ErrEmailExists if another user owns usr.Email.
		CreateUser(usr User) (User, error)
		GetUserByID(id string) (User, error)
		GetUserByEmail(email string) (User, error)
		// FilterUsers applies AND operation on available QueryFilter fields, in registration order.
		FilterUsers(filter QueryFilter) ([]User, error)
		UpdateUser(usr User) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(email string, excludedIDs ...string) error {
	if err := svc.repo.CheckEmailUniqueness(email, excludedIDs...); err != nil {
		return emailError(err, "checking email uniqueness")
	}
	return nil
}

// emailError reports ErrEmailExists as a field error on email and wraps anything else.
func emailError(err error, msg string) error {
	if errors.Cause(err) == ErrEmailExists {
		return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Message: emailExistsText})
	}
	return errors.Wrap(err, msg)
}

// Register creates an active User. Email uniqueness and password similarity are reported as field errors.
func (svc *Service) Register(nu NewUser) (User, error) {
	if err := svc.checkUniqueness(nu.Email); err != nil {
		return User{}, err
	}
	if err := passwordSimilarity(nu.Password, nu.Name, emailLocalPart(nu.Email)); err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	usr := User{
		ID:        uuid.NewString(),
		Name:      nu.Name,
		Email:     nu.Email,
		Role:      nu.Role,
		SchoolID:  nu.SchoolID,
		Phone:     nu.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	// the email may have been taken while hashing
	created, err := svc.repo.CreateUser(usr)
	if err != nil {
		return User{}, emailError(err, "creating user")
	}
	return created, nil
}

// Authenticate returns the active User owning the credentials.
func (svc *Service) Authenticate(creds Credentials) (User, error) {
	usr, err := svc.repo.GetUserByEmail(core.CleanString(creds.Email, true /* lower */))
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding user by email")
	}
	if err := usr.CheckPassword(creds.Password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	if !usr.IsActive {
		return User{}, ErrAccountDeactivated
	}
	return usr, nil
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) Query(filter QueryFilter) ([]User, error) {
	filter.Clean()
	return svc.repo.FilterUsers(filter)
}

// Update applies the set fields of uu to the User identified by id.
func (svc *Service) Update(id string, uu UpdateUser) (User, error) {
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, err
	}

	if uu.Email != nil && *uu.Email != usr.Email {
		if err := svc.checkUniqueness(*uu.Email, usr.ID); err != nil {
			return User{}, err
		}
		usr.Email = *uu.Email
	}
	if uu.Name != nil {
		usr.Name = *uu.Name
	}
	if uu.Phone != nil {
		usr.Phone = *uu.Phone
	}
	if uu.Avatar != nil {
		usr.Avatar = *uu.Avatar
	}
	if uu.SchoolID != nil {
		usr.SchoolID = *uu.SchoolID
	}
	if uu.IsActive != nil {
		usr.IsActive = *uu.IsActive
	}
	if uu.Password != nil {
		if err := passwordSimilarity(*uu.Password, usr.Name, emailLocalPart(usr.Email)); err != nil {
			return User{}, err
		}
		if err := usr.SetPassword(*uu.Password); err != nil {
			return User{}, errors.Wrap(err, "hashing password")
		}
	}
	usr.UpdatedAt = time.Now().UTC()
	updated, err := svc.repo.UpdateUser(usr)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, err
		}
		return User{}, emailError(err, "updating user")
	}
	return updated, nil
}
