package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/store"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthIdentityRepository struct{ mock.Mock }

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

func (m *MockAuthIdentityRepository) Save(ctx context.Context, authIdentity *identity.AuthIdentity) error {
	return m.Called(ctx, authIdentity).Error(0)
}

func (m *MockAuthIdentityRepository) Update(ctx context.Context, authIdentity *identity.AuthIdentity) error {
	return m.Called(ctx, authIdentity).Error(0)
}

func (m *MockAuthIdentityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserRepository struct{ mock.Mock }

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

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockStoreRepository struct{ mock.Mock }

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
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]store.Store), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoreRepository) Save(ctx context.Context, s *store.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStoreRepository) Update(ctx context.Context, s *store.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockStoreAddressRepository struct{ mock.Mock }

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
	return m.Called(ctx, addr).Error(0)
}

func (m *MockStoreAddressRepository) Update(ctx context.Context, addr *store.StoreAddress) error {
	return m.Called(ctx, addr).Error(0)
}

func (m *MockStoreAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockBrandRepository struct{ mock.Mock }

func (m *MockBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) FindByHandle(ctx context.Context, handle string) (*catalog.Brand, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Brand, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]catalog.Brand), args.Get(1).(int64), args.Error(2)
}

func (m *MockBrandRepository) Save(ctx context.Context, brand *catalog.Brand) error {
	return m.Called(ctx, brand).Error(0)
}

func (m *MockBrandRepository) Update(ctx context.Context, brand *catalog.Brand) error {
	return m.Called(ctx, brand).Error(0)
}

func (m *MockBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// withStoreContext simulates an authenticated seller session
func withStoreContext(storeID, userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTStoreIDKey, storeID.String())
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Next()
	}
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
