package crud

import "gorm.io/gorm"

// A ServicesConfig is any function that takes in a pointer to a Services
// object and returns an error. It's basically just wrapping the constructor
// method of any given crud service. It exists to be able to easily create
// the crud services using functional options in main.go.
type ServicesConfig func(*Services) error

// Services is a container object holding pointers to all the crud services.
// The crud services all share the database connection provided by Services.
type Services struct {
	db        *gorm.DB
	Account   *AccountService
	User      *UserService
	Space     *SpaceService
	Following *FollowingService
}

// NewServices returns a new Services object, containing any crud services
// it's told to create by one of the passed in ServicesConfig functions.
// It shares the passed in database connection with any crud service it creates.
func NewServices(db *gorm.DB, cfgs ...ServicesConfig) (*Services, error) {
	s := Services{
		db: db,
	}
	for _, cfg := range cfgs {
		if err := cfg(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// WithAccount wraps the constructor of AccountService, NewAccountService.
func WithAccount() ServicesConfig {
	return func(s *Services) error {
		s.Account = NewAccountService(s.db)
		return nil
	}
}

// WithUser wraps the constructor of UserService, NewUserService.
func WithUser() ServicesConfig {
	return func(s *Services) error {
		s.User = NewUserService(s.db)
		return nil
	}
}

// WithSpace wraps the constructor of SpaceService, NewSpaceService.
func WithSpace() ServicesConfig {
	return func(s *Services) error {
		s.Space = NewSpaceService(s.db)
		return nil
	}
}

// WithFollowing wraps the constructor of FollowingService, NewFollowingService.
func WithFollowing() ServicesConfig {
	return func(s *Services) error {
		s.Following = NewFollowingService(s.db)
		return nil
	}
}
