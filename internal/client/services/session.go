// Package services contains application services for the taskboard client.
// This file defines the session manager: the login state machine, second
// factor handling, and persistence of the credentials record.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/navigator"
	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
)

// AuthClient is the remote side of authentication. *api.AuthAPI implements it.
type AuthClient interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)
	Verify2FA(ctx context.Context, userID models.ID, code string) (*models.VerifyResponse, error)
}

// Store is the persisted storage used for the credentials and pending
// records. kv.Repository implements it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetMany(ctx context.Context, values map[string][]byte) error
	DeleteMany(ctx context.Context, keys ...string) error
}

// Session is a snapshot of the current authentication state.
type Session struct {
	User    *models.User
	Loading bool
}

// LoginResult reports how a login attempt ended. Exactly one of Success and
// Requires2FA is set on a nil error.
type LoginResult struct {
	Success     bool
	Requires2FA bool
	UserID      models.ID
}

// PendingChallenge describes an unresolved second-factor login.
type PendingChallenge struct {
	UserID models.ID
	Email  string
}

// SessionManager owns the current user.
//
// States:
//   - Anonymous: no user in memory, no credentials stored.
//   - Authenticated: user in memory, token and user stored.
//   - AwaitingSecondFactor: Anonymous plus a stored pending record.
//
// Storage is written before the in-memory state changes, and only after the
// server has answered. Methods are safe for concurrent use; two concurrent
// logins are not serialized against each other.
type SessionManager struct {
	auth  AuthClient
	store Store
	nav   navigator.Navigator
	log   logging.Logger

	mu      sync.RWMutex
	user    *models.User
	loading bool
	ready   bool
}

// NewSessionManager restores any stored session and returns a ready manager.
// Restoration reads storage once and makes no network calls. Bad stored
// data is discarded and the session starts anonymous.
func NewSessionManager(ctx context.Context, auth AuthClient, store Store, nav navigator.Navigator, log logging.Logger) *SessionManager {
	if log == nil {
		log = logging.Discard()
	}
	m := &SessionManager{
		auth:    auth,
		store:   store,
		nav:     nav,
		log:     log.With("component", "session"),
		loading: true,
		ready:   true,
	}

	user := m.restore(ctx)

	m.mu.Lock()
	m.user = user
	m.loading = false
	m.mu.Unlock()

	return m
}

func (m *SessionManager) restore(ctx context.Context) *models.User {
	token, err := m.store.Get(ctx, common.TokenKey)
	if err != nil {
		m.log.Error(ctx, "failed to read stored token", "error", err)
		return nil
	}
	raw, err := m.store.Get(ctx, common.UserKey)
	if err != nil {
		m.log.Error(ctx, "failed to read stored user", "error", err)
		return nil
	}

	switch {
	case len(token) == 0 && len(raw) == 0:
		return nil
	case len(token) == 0 || len(raw) == 0:
		m.log.Warn(ctx, "discarding incomplete stored credentials",
			"has_token", len(token) > 0, "has_user", len(raw) > 0)
		m.discardCredentials(ctx)
		return nil
	}

	user, err := models.DecodeUser(raw)
	if err == nil && !models.HasPayload(raw) {
		err = errors.New("stored user is null")
	}
	if err != nil {
		m.log.Error(ctx, "stored user is corrupt, starting anonymous", "error", err)
		m.discardCredentials(ctx)
		return nil
	}
	m.log.Info(ctx, "session restored", "user_id", user.ID.String())
	return user
}

func (m *SessionManager) discardCredentials(ctx context.Context) {
	if err := m.store.DeleteMany(ctx, common.CredentialKeys...); err != nil {
		m.log.Error(ctx, "failed to discard stored credentials", "error", err)
	}
}

func (m *SessionManager) mustBeReady(op string) {
	if m == nil || !m.ready {
		panic(&UsageError{Op: op, Reason: "session manager was not created with NewSessionManager"})
	}
}

func (m *SessionManager) setUser(u *models.User) {
	m.mu.Lock()
	m.user = u
	m.mu.Unlock()
}

// Login authenticates with the service. A token/user answer completes the
// login; a second-factor answer stores the pending record and returns
// Requires2FA. Dispatcher errors are returned unchanged and leave the
// session as it was.
func (m *SessionManager) Login(ctx context.Context, creds models.Credentials) (LoginResult, error) {
	m.mustBeReady("Login")

	resp, err := m.auth.Login(ctx, creds)
	if err != nil {
		return LoginResult{}, err
	}

	switch {
	case resp.TwoFactorEnabled:
		if resp.UserID == "" {
			return LoginResult{}, fmt.Errorf("%w: challenge without user_id", ErrMalformedResponse)
		}
		if err := m.beginChallenge(ctx, resp.UserID, creds); err != nil {
			return LoginResult{}, err
		}
		m.log.Info(ctx, "second factor required", "user_id", resp.UserID.String())
		return LoginResult{Requires2FA: true, UserID: resp.UserID}, nil

	case resp.Token != "" && models.HasPayload(resp.User):
		if err := m.authenticate(ctx, resp.Token, resp.User); err != nil {
			return LoginResult{}, err
		}
		return LoginResult{Success: true}, nil

	default:
		return LoginResult{}, ErrMalformedResponse
	}
}

// authenticate persists token and raw user together, drops any pending
// record and then switches the in-memory user.
func (m *SessionManager) authenticate(ctx context.Context, token string, raw json.RawMessage) error {
	user, err := models.DecodeUser(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if err := m.store.SetMany(ctx, map[string][]byte{
		common.TokenKey: []byte(token),
		common.UserKey:  []byte(raw),
	}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := m.store.DeleteMany(ctx, common.PendingKeys...); err != nil {
		m.log.Warn(ctx, "failed to clear pending second-factor record", "error", err)
	}

	m.setUser(user)
	m.log.Info(ctx, "session authenticated", "user_id", user.ID.String(), "role", string(user.Role))
	return nil
}

func (m *SessionManager) beginChallenge(ctx context.Context, userID models.ID, creds models.Credentials) error {
	if err := m.store.DeleteMany(ctx, common.CredentialKeys...); err != nil {
		return fmt.Errorf("clear stale session: %w", err)
	}
	m.setUser(nil)

	// The password is kept in plain text so the challenge can be re-sent
	// by repeating the login.
	if err := m.store.SetMany(ctx, map[string][]byte{
		common.PendingUserIDKey:   []byte(userID.String()),
		common.PendingEmailKey:    []byte(creds.Email),
		common.PendingPasswordKey: []byte(creds.Password),
	}); err != nil {
		return fmt.Errorf("persist second-factor challenge: %w", err)
	}
	return nil
}

// PendingSecondFactor returns the unresolved challenge, if any.
func (m *SessionManager) PendingSecondFactor(ctx context.Context) (PendingChallenge, bool, error) {
	m.mustBeReady("PendingSecondFactor")

	p, _, ok, err := m.readPending(ctx)
	return p, ok, err
}

func (m *SessionManager) readPending(ctx context.Context) (PendingChallenge, string, bool, error) {
	id, err := m.store.Get(ctx, common.PendingUserIDKey)
	if err != nil {
		return PendingChallenge{}, "", false, fmt.Errorf("read second-factor challenge: %w", err)
	}
	if len(id) == 0 {
		return PendingChallenge{}, "", false, nil
	}
	email, err := m.store.Get(ctx, common.PendingEmailKey)
	if err != nil {
		return PendingChallenge{}, "", false, fmt.Errorf("read second-factor challenge: %w", err)
	}
	password, err := m.store.Get(ctx, common.PendingPasswordKey)
	if err != nil {
		return PendingChallenge{}, "", false, fmt.Errorf("read second-factor challenge: %w", err)
	}
	return PendingChallenge{UserID: models.ID(id), Email: string(email)}, string(password), true, nil
}

// Verify2FA completes a pending challenge with code. A rejected code keeps
// the challenge so the user can try again.
func (m *SessionManager) Verify2FA(ctx context.Context, code string) (LoginResult, error) {
	m.mustBeReady("Verify2FA")

	pending, _, ok, err := m.readPending(ctx)
	if err != nil {
		return LoginResult{}, err
	}
	if !ok {
		return LoginResult{}, ErrNoPendingChallenge
	}

	resp, err := m.auth.Verify2FA(ctx, pending.UserID, code)
	if err != nil {
		return LoginResult{}, err
	}
	if !resp.Success || resp.Token == "" {
		if resp.Message != "" {
			return LoginResult{}, fmt.Errorf("%w: %s", ErrSecondFactorRejected, resp.Message)
		}
		return LoginResult{}, ErrSecondFactorRejected
	}

	raw := resp.User
	if !models.HasPayload(raw) {
		raw, err = json.Marshal(models.User{ID: pending.UserID, Email: pending.Email})
		if err != nil {
			return LoginResult{}, err
		}
	}
	if err := m.authenticate(ctx, resp.Token, raw); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Success: true}, nil
}

// ResendSecondFactor repeats the login that produced the pending challenge,
// which makes the service issue a new code.
func (m *SessionManager) ResendSecondFactor(ctx context.Context) (LoginResult, error) {
	m.mustBeReady("ResendSecondFactor")

	pending, password, ok, err := m.readPending(ctx)
	if err != nil {
		return LoginResult{}, err
	}
	if !ok {
		return LoginResult{}, ErrNoPendingChallenge
	}
	return m.Login(ctx, models.Credentials{Email: pending.Email, Password: password})
}

// AbandonSecondFactor forgets the pending challenge.
func (m *SessionManager) AbandonSecondFactor(ctx context.Context) error {
	m.mustBeReady("AbandonSecondFactor")

	if err := m.store.DeleteMany(ctx, common.PendingKeys...); err != nil {
		return fmt.Errorf("clear second-factor challenge: %w", err)
	}
	return nil
}

// Register creates an account. It never changes the session.
func (m *SessionManager) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	m.mustBeReady("Register")
	return m.auth.Register(ctx, req)
}

// Logout forgets the user, clears storage and navigates to the login page.
// No request is sent. Navigation happens even if clearing storage fails;
// that error is returned.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mustBeReady("Logout")

	m.setUser(nil)
	err := m.store.DeleteMany(ctx, common.AllKeys()...)
	if err != nil {
		m.log.Error(ctx, "failed to clear stored session", "error", err)
	}
	m.nav.Navigate(ctx, navigator.LoginPath)
	m.log.Info(ctx, "logged out")

	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// HandleUnauthorized drops the in-memory user after the dispatcher has
// cleared storage in response to a 401.
func (m *SessionManager) HandleUnauthorized(ctx context.Context) {
	m.mustBeReady("HandleUnauthorized")

	m.setUser(nil)
	m.log.Info(ctx, "session cleared after server rejection")
}

// User returns a copy of the current user, or nil.
func (m *SessionManager) User() *models.User {
	m.mustBeReady("User")

	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyUser(m.user)
}

// Session returns a snapshot of the user and loading flag.
func (m *SessionManager) Session() Session {
	m.mustBeReady("Session")

	m.mu.RLock()
	defer m.mu.RUnlock()
	return Session{User: copyUser(m.user), Loading: m.loading}
}

// Loading reports whether the stored session is still being restored.
func (m *SessionManager) Loading() bool {
	m.mustBeReady("Loading")

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// IsAuthenticated reports whether a user is signed in.
func (m *SessionManager) IsAuthenticated() bool {
	m.mustBeReady("IsAuthenticated")

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// IsAdmin compares the role case-sensitively.
func (m *SessionManager) IsAdmin() bool {
	m.mustBeReady("IsAdmin")
	return m.hasRole(models.RoleAdmin)
}

// IsStudent compares the role case-sensitively.
func (m *SessionManager) IsStudent() bool {
	m.mustBeReady("IsStudent")
	return m.hasRole(models.RoleStudent)
}

func (m *SessionManager) hasRole(r models.Role) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.Role == r
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
