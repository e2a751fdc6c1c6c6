// Package identity resolves the current user from persisted session state.
// Components receive it by injection rather than reading ambient storage,
// which keeps the workflows testable in isolation.
package identity

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"cloudex-trader/internal/errors"
	"cloudex-trader/internal/models"
)

// Context exposes the identity of the currently signed-in user.
type Context interface {
	CurrentUserID() (string, error)
	CurrentRole() models.Role
	IsAuthenticated() bool
}

// sessionData is the persisted session shape.
type sessionData struct {
	UserID    string      `json:"user_id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// FileContext is a Context backed by a JSON session file.
type FileContext struct {
	path    string
	session *sessionData
}

// SessionTTL is how long a saved session stays valid.
const SessionTTL = 24 * time.Hour

// NewFileContext creates an identity context backed by the given session file.
// A missing or expired session file leaves the context unauthenticated.
func NewFileContext(path string) *FileContext {
	fc := &FileContext{path: path}
	_ = fc.load()
	return fc
}

func (fc *FileContext) load() error {
	data, err := os.ReadFile(fc.path)
	if err != nil {
		return err
	}

	var session sessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return err
	}

	if time.Now().After(session.ExpiresAt) {
		return errors.ErrSessionExpired
	}
	if uuid.Validate(session.UserID) != nil {
		return errors.ErrInvalidCredentials
	}

	fc.session = &session
	return nil
}

// CurrentUserID returns the signed-in user's id.
func (fc *FileContext) CurrentUserID() (string, error) {
	if fc.session == nil {
		return "", errors.ErrNotAuthenticated
	}
	return fc.session.UserID, nil
}

// CurrentRole returns the signed-in user's role, defaulting to the
// unprivileged role when no session exists.
func (fc *FileContext) CurrentRole() models.Role {
	if fc.session == nil {
		return models.RoleUser
	}
	return fc.session.Role
}

// IsAuthenticated reports whether a valid session is loaded.
func (fc *FileContext) IsAuthenticated() bool {
	return fc.session != nil
}

// CurrentUsername returns the signed-in username, or empty when signed out.
func (fc *FileContext) CurrentUsername() string {
	if fc.session == nil {
		return ""
	}
	return fc.session.Username
}

// Save persists a fresh session after a successful login.
func (fc *FileContext) Save(user *models.User) error {
	if uuid.Validate(user.ID) != nil {
		return errors.Wrapf(errors.ErrInvalidCredentials, "malformed user id %q", user.ID)
	}

	session := sessionData{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(SessionTTL),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fc.path), 0700); err != nil {
		return err
	}
	if err := os.WriteFile(fc.path, data, 0600); err != nil {
		return err
	}

	fc.session = &session
	return nil
}

// Clear removes the persisted session on logout.
func (fc *FileContext) Clear() error {
	fc.session = nil
	if err := os.Remove(fc.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Static is a fixed identity, used in tests and one-off scripted runs.
type Static struct {
	UserID string
	Role   models.Role
}

// CurrentUserID returns the fixed user id.
func (s Static) CurrentUserID() (string, error) {
	if s.UserID == "" {
		return "", errors.ErrNotAuthenticated
	}
	return s.UserID, nil
}

// CurrentRole returns the fixed role.
func (s Static) CurrentRole() models.Role {
	if s.Role == "" {
		return models.RoleUser
	}
	return s.Role
}

// IsAuthenticated reports whether a user id is set.
func (s Static) IsAuthenticated() bool {
	return s.UserID != ""
}
