package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskboard/internal/client/api"
	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/navigator"
	"github.com/dmitrijs2005/taskboard/internal/client/services"
)

var alice = &models.User{ID: "1", Name: "Alice", Email: "alice@example.org", Role: models.RoleAdmin}

func TestRegister_Success(t *testing.T) {
	f := &fakeAuth{regResp: &models.RegisterResponse{Success: true, Message: "User created"}}
	app, out, _ := newTestApp(f, &fakeRequester{}, "")
	stubInputs(t, "secret1", "Alice", "alice@example.org", "Student")

	require.NoError(t, app.Register(context.Background()))

	assert.Equal(t, models.RegisterRequest{
		Name: "Alice", Email: "alice@example.org", Password: "secret1", Role: models.RoleStudent,
	}, f.regReq)
	assert.Contains(t, out.String(), "User created")
	assert.Nil(t, f.user)
}

func TestRegister_ErrorPropagates(t *testing.T) {
	f := &fakeAuth{regErr: errors.New("taken")}
	app, _, _ := newTestApp(f, &fakeRequester{}, "")
	stubInputs(t, "secret1", "Alice", "alice@example.org", "")

	require.EqualError(t, app.Register(context.Background()), "taken")
}

func TestLogin_Success(t *testing.T) {
	f := &fakeAuth{loginRes: services.LoginResult{Success: true}, loginUser: alice}
	app, out, nav := newTestApp(f, &fakeRequester{}, "")
	stubInputs(t, "pw", "alice@example.org")

	require.NoError(t, app.Login(context.Background()))

	assert.Equal(t, models.Credentials{Email: "alice@example.org", Password: "pw"}, f.loginCreds)
	assert.Equal(t, navigator.DashboardPath, nav.Location())
	assert.Contains(t, out.String(), "Logged in as Alice (Admin)")
	assert.True(t, app.isLoggedIn())
}

func TestLogin_SecondFactorEnteredImmediately(t *testing.T) {
	f := &fakeAuth{loginRes: services.LoginResult{Requires2FA: true, UserID: "1"}, loginUser: alice}
	app, _, nav := newTestApp(f, &fakeRequester{}, "")
	stubInputs(t, "pw", "alice@example.org", "123456")

	require.NoError(t, app.Login(context.Background()))

	assert.Equal(t, "123456", f.verifyCode)
	assert.Equal(t, navigator.DashboardPath, nav.Location())
}

func TestLogin_SecondFactorDeferred(t *testing.T) {
	f := &fakeAuth{loginRes: services.LoginResult{Requires2FA: true, UserID: "1"}, loginUser: alice}
	app, _, nav := newTestApp(f, &fakeRequester{}, "")
	stubInputs(t, "pw", "alice@example.org", "")

	require.NoError(t, app.Login(context.Background()))
	assert.Empty(t, f.verifyCode)
	assert.True(t, f.pending)
	assert.Equal(t, navigator.LoginPath, nav.Location())

	stubInputs(t, "", "654321")
	require.NoError(t, app.Verify(context.Background()))
	assert.Equal(t, "654321", f.verifyCode)
	assert.True(t, app.isLoggedIn())
}

func TestVerify_RejectedCode(t *testing.T) {
	f := &fakeAuth{pending: true, verifyErr: services.ErrSecondFactorRejected}
	app, out, _ := newTestApp(f, &fakeRequester{}, "")
	stubInputs(t, "", "000000")

	err := app.Verify(context.Background())

	require.ErrorIs(t, err, services.ErrSecondFactorRejected)
	assert.Contains(t, out.String(), "Code rejected")
}

func TestVerify_NothingPending(t *testing.T) {
	app, _, _ := newTestApp(&fakeAuth{}, &fakeRequester{}, "")

	require.ErrorIs(t, app.Verify(context.Background()), services.ErrNoPendingChallenge)
}

func TestResendAndCancel(t *testing.T) {
	f := &fakeAuth{pending: true, resendRes: services.LoginResult{Requires2FA: true}}
	app, out, _ := newTestApp(f, &fakeRequester{}, "")

	require.NoError(t, app.Resend(context.Background()))
	assert.Contains(t, out.String(), "new code")

	require.NoError(t, app.CancelSecondFactor(context.Background()))
	assert.True(t, f.abandonCalled)
}

func TestLogout(t *testing.T) {
	f := &fakeAuth{user: alice}
	app, _, _ := newTestApp(f, &fakeRequester{}, "")

	require.NoError(t, app.Logout(context.Background()))

	assert.True(t, f.logoutCalled)
	assert.False(t, app.isLoggedIn())
}

func TestLogout_ErrorPropagates(t *testing.T) {
	f := &fakeAuth{logoutErr: errors.New("clean-fail")}
	app, _, _ := newTestApp(f, &fakeRequester{}, "")

	require.Error(t, app.Logout(context.Background()))
}

func TestTwoFactor_Enable(t *testing.T) {
	f := &fakeAuth{user: alice}
	r := &fakeRequester{replies: map[string]string{
		"/auth/enable-2fa": `{"success":true,"secret":"JBSWY3DP","qr_code":"data:image/png;base64,xx"}`,
	}}
	app, out, _ := newTestApp(f, r, "")

	require.NoError(t, app.TwoFactor(context.Background(), []string{"enable"}))

	assert.Equal(t, []string{"POST /auth/enable-2fa"}, r.paths())
	assert.JSONEq(t, `{"user_id":1}`, r.calls[0].body)
	assert.Contains(t, out.String(), "JBSWY3DP")
}

func TestTwoFactor_Disable(t *testing.T) {
	r := &fakeRequester{}
	app, _, _ := newTestApp(&fakeAuth{user: alice}, r, "")

	require.NoError(t, app.TwoFactor(context.Background(), []string{"disable"}))
	assert.Equal(t, []string{"POST /auth/disable-2fa"}, r.paths())
}

func TestTwoFactor_Usage(t *testing.T) {
	r := &fakeRequester{}
	app, _, _ := newTestApp(&fakeAuth{user: alice}, r, "")

	require.ErrorIs(t, app.TwoFactor(context.Background(), nil), errUsage)
	require.ErrorIs(t, app.TwoFactor(context.Background(), []string{"toggle"}), errUsage)
	assert.Empty(t, r.calls)
}

func TestWhoAmI_RequiresLogin(t *testing.T) {
	app, _, nav := newTestApp(&fakeAuth{}, &fakeRequester{}, "")
	nav.Navigate(context.Background(), navigator.DashboardPath)

	require.ErrorIs(t, app.WhoAmI(context.Background()), errLoginRequired)
	assert.Equal(t, navigator.LoginPath, nav.Location())
}

func TestGetStatus(t *testing.T) {
	f := &fakeAuth{}
	app, _, nav := newTestApp(f, &fakeRequester{}, "")
	assert.Equal(t, "/login", app.getStatus())

	f.user = &models.User{ID: "2", Email: "bob@example.org", Role: models.RoleStudent}
	nav.Navigate(context.Background(), navigator.DashboardPath)
	assert.Equal(t, "(bob@example.org Student) /dashboard", app.getStatus())
}

func TestRun_TakesSessionFromContext(t *testing.T) {
	silencePrintln(t)
	ctx := context.Background()
	store := newMemStore()
	nav := navigator.NewRecorder(navigator.LoginPath, nil)
	sm := services.NewSessionManager(ctx, nil, store, nav, nil)

	app := NewApp(api.New(&fakeRequester{}), nav, nil)
	var out bytes.Buffer
	app.out = &out
	app.reader = bufio.NewReader(strings.NewReader("exit\n"))

	app.Run(services.WithSession(ctx, sm))

	assert.Same(t, sm, app.session)
	assert.Contains(t, out.String(), "Welcome")
}

func TestRun_PanicsWithoutSession(t *testing.T) {
	app := NewApp(api.New(&fakeRequester{}), nil, nil)

	assert.Panics(t, func() { app.Run(context.Background()) })
}
