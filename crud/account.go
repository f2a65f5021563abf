package crud

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"wtfSpaces/auth"
	"wtfSpaces/domain"
	"wtfSpaces/errs"
)

// AccountService resolves verified subject claims into sessions. It owns
// the lazy Account+User bootstrap: the first time an external identity
// shows up, both records are created together. It implements the
// domain.SessionService interface.
type AccountService struct {
	accountValidator
}

// accountValidator runs validations on the incoming subject claim.
// On success, it passes the resolution on to accountGorm.
type accountValidator struct {
	accountGorm
}

// accountGorm runs the account lookups and creations on the database.
type accountGorm struct {
	db *gorm.DB
}

// NewAccountService returns an instance of AccountService.
func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{
		accountValidator{
			accountGorm{
				db: db,
			},
		},
	}
}

// Ensure the AccountService struct properly implements the domain.SessionService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.SessionService = &AccountService{}

// ResolveSession maps a verified subject claim to a session. Repeated calls
// with the same subject always resolve to the same user; a losing racer on
// the very first login falls back to looking up the row the winner created.
func (av *accountValidator) ResolveSession(ctx context.Context, subject string) (*domain.Session, error) {
	provider, providerID, err := auth.ParseSubject(subject)
	if err != nil {
		return nil, err
	}

	account, err := av.accountGorm.ByProviderIdentity(ctx, provider, providerID)
	if err == nil {
		return &domain.Session{User: account.User}, nil
	}
	if errs.ErrorCode(err) != errs.ENOTFOUND {
		return nil, err
	}

	account, err = av.accountGorm.Create(ctx, provider, providerID)
	if err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, storeErr(ctx, err)
		}
		// A concurrent first login for the same identity won the insert
		// race. The store's uniqueness constraint is the source of truth,
		// so treat the conflict as "the row exists" and look it up.
		account, err = av.accountGorm.ByProviderIdentity(ctx, provider, providerID)
		if err != nil {
			return nil, err
		}
	}
	return &domain.Session{User: account.User}, nil
}

// ByProviderIdentity retrieves an Account record with its User by the
// unique (provider, providerId) pair.
func (ag *accountGorm) ByProviderIdentity(ctx context.Context, provider, providerID string) (*domain.Account, error) {
	var account domain.Account
	err := ag.db.WithContext(ctx).
		Preload("User").
		Where("provider = ?", provider).
		Where("provider_id = ?", providerID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "The account does not exist.")
		}
		return nil, storeErr(ctx, err)
	}
	return &account, nil
}

// Create stores a new Account together with its bound User in one insert.
// The generated profile is deterministic from the identity; the user can
// change it later through a profile update.
func (ag *accountGorm) Create(ctx context.Context, provider, providerID string) (*domain.Account, error) {
	account := domain.Account{
		Provider:   provider,
		ProviderID: providerID,
		User: &domain.User{
			UniqueName:  fmt.Sprintf("%s_%s", provider, providerID),
			DisplayName: providerID,
		},
	}
	if err := ag.db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
