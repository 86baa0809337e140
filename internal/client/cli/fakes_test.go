package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/taskboard/internal/client/api"
	"github.com/dmitrijs2005/taskboard/internal/client/client"
	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/navigator"
	"github.com/dmitrijs2005/taskboard/internal/client/services"
)

// fakeAuth stands in for the session manager.
type fakeAuth struct {
	user *models.User

	loginCreds models.Credentials
	loginRes   services.LoginResult
	loginUser  *models.User // becomes the session user on success
	loginErr   error

	pending    bool
	verifyCode string
	verifyErr  error

	resendRes services.LoginResult
	resendErr error

	abandonCalled bool

	regReq  models.RegisterRequest
	regResp *models.RegisterResponse
	regErr  error

	logoutCalled bool
	logoutErr    error
}

func (f *fakeAuth) Login(_ context.Context, creds models.Credentials) (services.LoginResult, error) {
	f.loginCreds = creds
	if f.loginErr != nil {
		return services.LoginResult{}, f.loginErr
	}
	if f.loginRes.Success {
		f.user = f.loginUser
	} else {
		f.pending = true
	}
	return f.loginRes, nil
}

func (f *fakeAuth) Verify2FA(_ context.Context, code string) (services.LoginResult, error) {
	f.verifyCode = code
	if f.verifyErr != nil {
		return services.LoginResult{}, f.verifyErr
	}
	f.pending = false
	f.user = f.loginUser
	return services.LoginResult{Success: true}, nil
}

func (f *fakeAuth) ResendSecondFactor(context.Context) (services.LoginResult, error) {
	return f.resendRes, f.resendErr
}

func (f *fakeAuth) AbandonSecondFactor(context.Context) error {
	f.abandonCalled = true
	f.pending = false
	return nil
}

func (f *fakeAuth) PendingSecondFactor(context.Context) (services.PendingChallenge, bool, error) {
	return services.PendingChallenge{UserID: "9"}, f.pending, nil
}

func (f *fakeAuth) Register(_ context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	f.regReq = req
	return f.regResp, f.regErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	f.user = nil
	return f.logoutErr
}

func (f *fakeAuth) Session() services.Session {
	return services.Session{User: f.user}
}

type call struct {
	method string
	path   string
	query  string
	body   string
}

// fakeRequester answers each path with a canned JSON reply.
type fakeRequester struct {
	calls   []call
	replies map[string]string
	err     error
}

func (f *fakeRequester) do(method, path string, params *client.Params, body, out any) error {
	c := call{method: method, path: path, query: params.Encode()}
	if body != nil {
		b, _ := json.Marshal(body)
		c.body = string(b)
	}
	f.calls = append(f.calls, c)
	if f.err != nil {
		return f.err
	}
	if reply, ok := f.replies[path]; ok && out != nil {
		return json.Unmarshal([]byte(reply), out)
	}
	return nil
}

func (f *fakeRequester) Get(_ context.Context, path string, params *client.Params, out any) error {
	return f.do("GET", path, params, nil, out)
}

func (f *fakeRequester) Post(_ context.Context, path string, body, out any) error {
	return f.do("POST", path, nil, body, out)
}

func (f *fakeRequester) Put(_ context.Context, path string, body, out any) error {
	return f.do("PUT", path, nil, body, out)
}

func (f *fakeRequester) Patch(_ context.Context, path string, body, out any) error {
	return f.do("PATCH", path, nil, body, out)
}

func (f *fakeRequester) Delete(_ context.Context, path string, out any) error {
	return f.do("DELETE", path, nil, nil, out)
}

func (f *fakeRequester) paths() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.method + " " + c.path
	}
	return out
}

func newTestApp(session SessionService, r *fakeRequester, input string) (*App, *bytes.Buffer, *navigator.Recorder) {
	var out bytes.Buffer
	nav := navigator.NewRecorder(navigator.LoginPath, nil)
	app := &App{
		session: session,
		api:     api.New(r),
		nav:     nav,
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     &out,
	}
	return app, &out, nav
}

// stubInputs feeds scripted answers to text prompts and a fixed password.
func stubInputs(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) { return []byte(password), nil }
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = toString(a)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, _ := json.Marshal(v)
	return string(b)
}

// memStore is an in-memory services.Store.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memStore) SetMany(_ context.Context, values map[string][]byte) error {
	for k, v := range values {
		m.data[k] = v
	}
	return nil
}

func (m *memStore) DeleteMany(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}
