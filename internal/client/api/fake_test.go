package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/taskboard/internal/client/client"
)

type call struct {
	method string
	path   string
	query  string
	body   string
}

// fakeRequester records calls and decodes reply into out.
type fakeRequester struct {
	calls []call
	reply string
	err   error
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
	if out != nil && f.reply != "" {
		return json.Unmarshal([]byte(f.reply), out)
	}
	return nil
}

func (f *fakeRequester) Get(_ context.Context, path string, params *client.Params, out any) error {
	return f.do(http.MethodGet, path, params, nil, out)
}

func (f *fakeRequester) Post(_ context.Context, path string, body, out any) error {
	return f.do(http.MethodPost, path, nil, body, out)
}

func (f *fakeRequester) Put(_ context.Context, path string, body, out any) error {
	return f.do(http.MethodPut, path, nil, body, out)
}

func (f *fakeRequester) Patch(_ context.Context, path string, body, out any) error {
	return f.do(http.MethodPatch, path, nil, body, out)
}

func (f *fakeRequester) Delete(_ context.Context, path string, out any) error {
	return f.do(http.MethodDelete, path, nil, nil, out)
}

func (f *fakeRequester) last() call {
	return f.calls[len(f.calls)-1]
}
