package crud

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"wtfSpaces/domain"
	"wtfSpaces/errs"
)

// UserService manages Users. Creation happens through the account
// bootstrap in AccountService; this service covers lookups and profile
// updates. It implements the domain.UserService interface.
type UserService struct {
	userValidator
}

// userValidator runs validations on incoming User data.
// On success, it passes the data on to userGorm.
// Otherwise, it returns the error of the validation that has failed.
type userValidator struct {
	uniqueNameRegex *regexp.Regexp
	userGorm
}

// userGorm runs CRUD operations on the database using incoming User data.
// It assumes that data has been validated.
type userGorm struct {
	db *gorm.DB
}

// NewUserService returns an instance of UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		userValidator{
			uniqueNameRegex: regexp.MustCompile(`^[a-z0-9_]{3,30}$`),
			userGorm: userGorm{
				db: db,
			},
		},
	}
}

// Ensure the UserService struct properly implements the domain.UserService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.UserService = &UserService{}

// Update runs validations needed for updating a User record in the database.
func (uv *userValidator) Update(ctx context.Context, user *domain.User) error {
	err := runUserValFns(ctx, user,
		uv.uniqueNameNormalize,
		uv.uniqueNameRequired,
		uv.uniqueNameFormat,
		uv.uniqueNameIsAvail,
	)
	if err != nil {
		return err
	}
	return uv.userGorm.Update(ctx, user)
}

// runUserValFns runs any number of functions of type userValFn on the passed
// in User object. If none of them returns an error, it returns nil.
// Otherwise, it returns the respective error.
func runUserValFns(ctx context.Context, user *domain.User, fns ...userValFn) error {
	for _, fn := range fns {
		if err := fn(ctx, user); err != nil {
			return err
		}
	}
	return nil
}

// A userValFn is any function that takes in a pointer to a domain.User object and returns an error.
type userValFn func(ctx context.Context, user *domain.User) error

// uniqueNameNormalize converts the unique name to all lowercase and trims its whitespaces.
func (uv *userValidator) uniqueNameNormalize(_ context.Context, user *domain.User) error {
	user.UniqueName = strings.ToLower(strings.TrimSpace(user.UniqueName))
	return nil
}

// uniqueNameRequired makes sure that the unique name is not the empty string.
func (uv *userValidator) uniqueNameRequired(_ context.Context, user *domain.User) error {
	if user.UniqueName == "" {
		return errs.Errorf(errs.EINVALID, "A unique name is required.")
	}
	return nil
}

// uniqueNameFormat makes sure that a provided unique name matches a predefined regex pattern.
func (uv *userValidator) uniqueNameFormat(_ context.Context, user *domain.User) error {
	if !uv.uniqueNameRegex.MatchString(user.UniqueName) {
		return errs.Errorf(errs.EINVALID, "The unique name must be 3-30 characters of a-z, 0-9 or _.")
	}
	return nil
}

// uniqueNameIsAvail makes sure that a provided unique name is not yet taken.
func (uv *userValidator) uniqueNameIsAvail(ctx context.Context, user *domain.User) error {
	existing, err := uv.userGorm.ByUniqueName(ctx, user.UniqueName)
	if errs.ErrorCode(err) == errs.ENOTFOUND {
		// Name is not taken.
		return nil
	}
	if err != nil {
		return err
	}
	if user.ID != existing.ID {
		// Name found, and the passed in user is not the owner of that name.
		return errs.Errorf(errs.EINVALID, "This unique name is already taken.")
	}
	return nil
}

// ByID retrieves a User database record by ID.
func (ug *userGorm) ByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := ug.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
		}
		return nil, storeErr(ctx, err)
	}
	return &user, nil
}

// ByUniqueName retrieves a User database record by its unique name.
func (ug *userGorm) ByUniqueName(ctx context.Context, uniqueName string) (*domain.User, error) {
	var user domain.User
	err := ug.db.WithContext(ctx).First(&user, "unique_name = ?", uniqueName).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
		}
		return nil, storeErr(ctx, err)
	}
	return &user, nil
}

// All retrieves every User record.
func (ug *userGorm) All(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	if err := ug.db.WithContext(ctx).Order("created_at asc").Find(&users).Error; err != nil {
		return nil, storeErr(ctx, err)
	}
	return users, nil
}

// Update saves changes to an existing user record in the database.
func (ug *userGorm) Update(ctx context.Context, user *domain.User) error {
	if err := ug.db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Errorf(errs.ECONFLICT, "This unique name is already taken.")
		}
		return storeErr(ctx, err)
	}
	return nil
}
