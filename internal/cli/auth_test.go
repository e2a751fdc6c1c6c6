package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"cloudex-trader/internal/identity"
	"cloudex-trader/internal/models"
)

func TestLoginPersistsRole(t *testing.T) {
	sessionPath := filepath.Join(t.TempDir(), "session.json")

	// The login response carries no role; it is served by a separate
	// endpoint and must end up in the saved session regardless.
	client := &stubClient{
		loginFn: func(ctx context.Context, username, email, password string) (*models.User, error) {
			return &models.User{ID: testUserID, Username: "alice"}, nil
		},
		getRoleFn: func(ctx context.Context, userID string) (models.Role, error) {
			if userID != testUserID {
				t.Errorf("GetRole userID = %q, want %q", userID, testUserID)
			}
			return models.RoleAdmin, nil
		},
	}

	app := &App{
		Logger:   zerolog.Nop(),
		Client:   client,
		Identity: identity.NewFileContext(sessionPath),
	}

	cmd := newLoginCmd(app)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--username", "alice", "--password", "pw"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if got := app.Identity.CurrentRole(); got != models.RoleAdmin {
		t.Errorf("session role = %q, want %q", got, models.RoleAdmin)
	}
	if err := requireAdmin(app, &Output{writer: io.Discard}); err != nil {
		t.Errorf("requireAdmin rejected a signed-in administrator: %v", err)
	}

	// The role survives a fresh load of the session file.
	reloaded := identity.NewFileContext(sessionPath)
	if got := reloaded.CurrentRole(); got != models.RoleAdmin {
		t.Errorf("reloaded session role = %q, want %q", got, models.RoleAdmin)
	}
}

func TestLoginRoleLookupFailureStillSignsIn(t *testing.T) {
	sessionPath := filepath.Join(t.TempDir(), "session.json")

	client := &stubClient{
		loginFn: func(ctx context.Context, username, email, password string) (*models.User, error) {
			return &models.User{ID: testUserID, Username: "alice"}, nil
		},
		getRoleFn: func(ctx context.Context, userID string) (models.Role, error) {
			return "", io.ErrUnexpectedEOF
		},
	}

	app := &App{
		Logger:   zerolog.Nop(),
		Client:   client,
		Identity: identity.NewFileContext(sessionPath),
	}

	cmd := newLoginCmd(app)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--username", "alice", "--password", "pw"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if !app.Identity.IsAuthenticated() {
		t.Error("session was not saved")
	}
	if got := app.Identity.CurrentRole(); got != models.RoleUser {
		t.Errorf("session role = %q, want the unprivileged default", got)
	}
}
