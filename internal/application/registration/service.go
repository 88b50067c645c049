package registration

import (
	"context"

	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/store"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/config"
)

// ErrInvalidRegistrationCode is returned before any side effect when the
// configured registration code does not match the supplied one.
var ErrInvalidRegistrationCode = shared.NewDomainError(
	"INVALID_REGISTRATION_CODE", "Invalid registration code")

// RegisterInput carries the vendor sign-up payload
type RegisterInput struct {
	Email            string
	Password         string
	FirstName        string
	LastName         string
	StoreName        string
	RegistrationCode string
	Address          *store.AddressInput
}

// RegisterResult is the outcome of a successful registration.
// Token is empty when auto-login failed; registration still succeeded.
type RegisterResult struct {
	User  *identity.User
	Store *store.Store
	Token string
}

// Service orchestrates the vendor registration saga
type Service struct {
	identityRepo identity.AuthIdentityRepository
	userRepo     identity.UserRepository
	storeRepo    store.StoreRepository
	addressRepo  store.StoreAddressRepository
	jwtService   *auth.JWTService
	config       config.RegistrationConfig
	logger       *zap.Logger
}

// NewService creates a new registration service
func NewService(
	identityRepo identity.AuthIdentityRepository,
	userRepo identity.UserRepository,
	storeRepo store.StoreRepository,
	addressRepo store.StoreAddressRepository,
	jwtService *auth.JWTService,
	cfg config.RegistrationConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		identityRepo: identityRepo,
		userRepo:     userRepo,
		storeRepo:    storeRepo,
		addressRepo:  addressRepo,
		jwtService:   jwtService,
		config:       cfg,
		logger:       logger,
	}
}

// Register runs the sign-up saga: identity, user, store. When a step fails
// the completed steps are compensated in reverse order and the step error is
// returned. The address and auto-login hooks after the saga are best-effort.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if s.config.Code != "" && input.RegistrationCode != s.config.Code {
		s.logger.Warn("Registration rejected, bad code", zap.String("email", input.Email))
		return nil, ErrInvalidRegistrationCode
	}

	var (
		authIdentity *identity.AuthIdentity
		user         *identity.User
		vendorStore  *store.Store
	)

	saga := NewSaga(s.logger,
		Step{
			Name: "create-auth-identity",
			Action: func(ctx context.Context) error {
				created, err := identity.NewEmailPassIdentity(input.Email, input.Password)
				if err != nil {
					return err
				}
				if err := s.identityRepo.Save(ctx, created); err != nil {
					return err
				}
				authIdentity = created
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.identityRepo.Delete(ctx, authIdentity.ID)
			},
		},
		Step{
			Name: "create-user",
			Action: func(ctx context.Context) error {
				created, err := identity.NewUser(input.Email)
				if err != nil {
					return err
				}
				created.SetName(input.FirstName, input.LastName)
				if err := s.userRepo.Save(ctx, created); err != nil {
					return err
				}
				authIdentity.BindUser(created.ID)
				if err := s.identityRepo.Update(ctx, authIdentity); err != nil {
					return err
				}
				user = created
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.userRepo.Delete(ctx, user.ID)
			},
		},
		Step{
			Name: "create-store",
			Action: func(ctx context.Context) error {
				created, err := store.NewStore(input.StoreName, user.ID)
				if err != nil {
					return err
				}
				if err := s.storeRepo.Save(ctx, created); err != nil {
					return err
				}
				vendorStore = created
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.storeRepo.Delete(ctx, vendorStore.ID)
			},
		},
	)

	if err := saga.Execute(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Vendor registered",
		zap.String("user_id", user.ID.String()),
		zap.String("store_id", vendorStore.ID.String()))

	s.createAddress(ctx, vendorStore, input.Address)

	result := &RegisterResult{
		User:  user,
		Store: vendorStore,
	}
	result.Token = s.autoLogin(user, vendorStore)

	return result, nil
}

// createAddress persists the optional sign-up address. Failures are logged
// only; the registration already committed.
func (s *Service) createAddress(ctx context.Context, vendorStore *store.Store, input *store.AddressInput) {
	if input == nil {
		return
	}

	addr, err := store.NewStoreAddress(vendorStore.ID, *input)
	if err != nil {
		s.logger.Warn("Skipping invalid registration address",
			zap.String("store_id", vendorStore.ID.String()),
			zap.Error(err))
		return
	}

	if err := s.addressRepo.Save(ctx, addr); err != nil {
		s.logger.Warn("Failed to save registration address",
			zap.String("store_id", vendorStore.ID.String()),
			zap.Error(err))
	}
}

// autoLogin mints a session token for the fresh vendor. An empty token
// means the caller has to log in manually.
func (s *Service) autoLogin(user *identity.User, vendorStore *store.Store) string {
	if s.jwtService == nil {
		return ""
	}

	storeID := vendorStore.ID
	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:  user.ID,
		StoreID: &storeID,
		Email:   user.Email,
	})
	if err != nil {
		s.logger.Warn("Auto-login failed after registration",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
		return ""
	}

	return token.Value
}
