package cli

import (
	"context"
	"path/filepath"
	"testing"

	"cloudex-trader/internal/api"
	"cloudex-trader/internal/identity"
	"cloudex-trader/internal/models"
)

const testUserID = "4f2d8e1a-9c3b-4a6d-8e5f-1b2c3d4e5f6a"

// stubClient overrides the api.Client methods the command tests exercise;
// calling anything else panics through the nil embedded interface, so a test
// cannot silently depend on behavior it did not arrange.
type stubClient struct {
	api.Client

	loginFn       func(ctx context.Context, username, email, password string) (*models.User, error)
	getRoleFn     func(ctx context.Context, userID string) (models.Role, error)
	getAllFn      func(ctx context.Context) ([]models.Stock, error)
	updateStockFn func(ctx context.Context, stockID, companyName, description string) error
	profileFn     func(ctx context.Context, userID string) (*models.User, error)
	editProfileFn func(ctx context.Context, userID, username, email, password string) error
}

func (s *stubClient) Login(ctx context.Context, username, email, password string) (*models.User, error) {
	return s.loginFn(ctx, username, email, password)
}

func (s *stubClient) GetRole(ctx context.Context, userID string) (models.Role, error) {
	return s.getRoleFn(ctx, userID)
}

func (s *stubClient) GetAllStocks(ctx context.Context) ([]models.Stock, error) {
	return s.getAllFn(ctx)
}

func (s *stubClient) UpdateStock(ctx context.Context, stockID, companyName, description string) error {
	return s.updateStockFn(ctx, stockID, companyName, description)
}

func (s *stubClient) GetUserProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubClient) EditProfile(ctx context.Context, userID, username, email, password string) error {
	return s.editProfileFn(ctx, userID, username, email, password)
}

// newTestIdentity returns a signed-in identity context with the given role,
// persisted under a per-test directory.
func newTestIdentity(t *testing.T, role models.Role) *identity.FileContext {
	t.Helper()
	fc := identity.NewFileContext(filepath.Join(t.TempDir(), "session.json"))
	user := &models.User{ID: testUserID, Username: "alice", Role: role}
	if err := fc.Save(user); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	return fc
}
