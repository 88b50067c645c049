package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/store"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/config"
)

// MockAuthIdentityRepository is a mock implementation of identity.AuthIdentityRepository
type MockAuthIdentityRepository struct {
	mock.Mock
}

func (m *MockAuthIdentityRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.AuthIdentity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AuthIdentity), args.Error(1)
}

func (m *MockAuthIdentityRepository) FindByEmail(ctx context.Context, provider, email string) (*identity.AuthIdentity, error) {
	args := m.Called(ctx, provider, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AuthIdentity), args.Error(1)
}

func (m *MockAuthIdentityRepository) Save(ctx context.Context, a *identity.AuthIdentity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAuthIdentityRepository) Update(ctx context.Context, a *identity.AuthIdentity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAuthIdentityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStoreRepository is a mock implementation of store.StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) FindAll(ctx context.Context, filter shared.Filter) ([]store.Store, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]store.Store), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoreRepository) Save(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) Update(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStoreAddressRepository is a mock implementation of store.StoreAddressRepository
type MockStoreAddressRepository struct {
	mock.Mock
}

func (m *MockStoreAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.StoreAddress, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.StoreAddress), args.Error(1)
}

func (m *MockStoreAddressRepository) FindByStore(ctx context.Context, storeID uuid.UUID) (*store.StoreAddress, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.StoreAddress), args.Error(1)
}

func (m *MockStoreAddressRepository) Save(ctx context.Context, addr *store.StoreAddress) error {
	args := m.Called(ctx, addr)
	return args.Error(0)
}

func (m *MockStoreAddressRepository) Update(ctx context.Context, addr *store.StoreAddress) error {
	args := m.Called(ctx, addr)
	return args.Error(0)
}

func (m *MockStoreAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type serviceMocks struct {
	identities *MockAuthIdentityRepository
	users      *MockUserRepository
	stores     *MockStoreRepository
	addresses  *MockStoreAddressRepository
}

func newTestService(t *testing.T, cfg config.RegistrationConfig) (*Service, *serviceMocks) {
	t.Helper()

	m := &serviceMocks{
		identities: new(MockAuthIdentityRepository),
		users:      new(MockUserRepository),
		stores:     new(MockStoreRepository),
		addresses:  new(MockStoreAddressRepository),
	}

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-for-registration",
		Expiration: time.Hour,
		Issuer:     "test",
	})

	svc := NewService(m.identities, m.users, m.stores, m.addresses, jwtService, cfg, zap.NewNop())
	return svc, m
}

func validInput() RegisterInput {
	return RegisterInput{
		Email:     "vendor@example.com",
		Password:  "supersecret",
		FirstName: "Jane",
		LastName:  "Doe",
		StoreName: "Jane's Goods",
	}
}

func TestService_Register_Success(t *testing.T) {
	svc, m := newTestService(t, config.RegistrationConfig{})

	m.identities.On("Save", mock.Anything, mock.AnythingOfType("*identity.AuthIdentity")).Return(nil)
	m.identities.On("Update", mock.Anything, mock.AnythingOfType("*identity.AuthIdentity")).Return(nil)
	m.users.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)
	m.stores.On("Save", mock.Anything, mock.AnythingOfType("*store.Store")).Return(nil)

	result, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "vendor@example.com", result.User.Email)
	assert.Equal(t, "Jane", result.User.FirstName)
	assert.Equal(t, "Jane's Goods", result.Store.Name)
	assert.Equal(t, result.User.ID, result.Store.OwnerUserID)
	assert.NotEmpty(t, result.Token)

	m.identities.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.stores.AssertExpectations(t)
}

func TestService_Register_BadCodeRejectedBeforeSideEffects(t *testing.T) {
	svc, m := newTestService(t, config.RegistrationConfig{Code: "letmein"})

	input := validInput()
	input.RegistrationCode = "wrong"

	_, err := svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRegistrationCode)

	m.identities.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	m.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	m.stores.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Register_MatchingCodeAccepted(t *testing.T) {
	svc, m := newTestService(t, config.RegistrationConfig{Code: "letmein"})

	m.identities.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.identities.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.users.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.stores.On("Save", mock.Anything, mock.Anything).Return(nil)

	input := validInput()
	input.RegistrationCode = "letmein"

	result, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestService_Register_DuplicateEmailFailsFirstStep(t *testing.T) {
	svc, m := newTestService(t, config.RegistrationConfig{})

	m.identities.On("Save", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

	_, err := svc.Register(context.Background(), validInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	// Nothing completed, so nothing to compensate.
	m.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	m.identities.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_Register_StoreFailureCompensatesUserAndIdentity(t *testing.T) {
	svc, m := newTestService(t, config.RegistrationConfig{})

	m.identities.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.identities.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.users.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.stores.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

	m.users.On("Delete", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)
	m.identities.On("Delete", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)

	_, err := svc.Register(context.Background(), validInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create-store")

	m.users.AssertCalled(t, "Delete", mock.Anything, mock.AnythingOfType("uuid.UUID"))
	m.identities.AssertCalled(t, "Delete", mock.Anything, mock.AnythingOfType("uuid.UUID"))
}

func TestService_Register_AddressIsBestEffort(t *testing.T) {
	svc, m := newTestService(t, config.RegistrationConfig{})

	m.identities.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.identities.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.users.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.stores.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.addresses.On("Save", mock.Anything, mock.Anything).Return(errors.New("address table locked"))

	input := validInput()
	input.Address = &store.AddressInput{
		Address1:    "1 Main St",
		City:        "Lisbon",
		PostalCode:  "1000-001",
		CountryCode: "PT",
	}

	result, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestService_Register_AddressCountryCodeLowercased(t *testing.T) {
	svc, m := newTestService(t, config.RegistrationConfig{})

	m.identities.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.identities.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.users.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.stores.On("Save", mock.Anything, mock.Anything).Return(nil)

	var saved *store.StoreAddress
	m.addresses.On("Save", mock.Anything, mock.AnythingOfType("*store.StoreAddress")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*store.StoreAddress)
		}).Return(nil)

	input := validInput()
	input.Address = &store.AddressInput{
		Address1:    "1 Main St",
		City:        "Lisbon",
		PostalCode:  "1000-001",
		CountryCode: "PT",
	}

	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "pt", saved.CountryCode)
}

func TestService_Register_InvalidAddressSkipped(t *testing.T) {
	svc, m := newTestService(t, config.RegistrationConfig{})

	m.identities.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.identities.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.users.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.stores.On("Save", mock.Anything, mock.Anything).Return(nil)

	input := validInput()
	input.Address = &store.AddressInput{City: "Lisbon"} // missing required fields

	result, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	assert.NotNil(t, result)

	m.addresses.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Register_NoJWTServiceLeavesTokenEmpty(t *testing.T) {
	m := &serviceMocks{
		identities: new(MockAuthIdentityRepository),
		users:      new(MockUserRepository),
		stores:     new(MockStoreRepository),
		addresses:  new(MockStoreAddressRepository),
	}
	svc := NewService(m.identities, m.users, m.stores, m.addresses, nil,
		config.RegistrationConfig{}, zap.NewNop())

	m.identities.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.identities.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.users.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.stores.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	assert.Empty(t, result.Token)
}
