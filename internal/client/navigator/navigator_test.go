package navigator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder_TracksLocationAndHistory(t *testing.T) {
	var moved []string
	r := NewRecorder("/", func(loc string) { moved = append(moved, loc) })
	assert.Equal(t, "/", r.Location())
	assert.Empty(t, r.History())

	ctx := context.Background()
	r.Navigate(ctx, DashboardPath)
	r.Navigate(ctx, LoginPath)

	assert.Equal(t, LoginPath, r.Location())
	assert.Equal(t, []string{"/dashboard", "/login"}, r.History())
	assert.Equal(t, []string{"/dashboard", "/login"}, moved)
}

func TestRecorder_HistoryIsACopy(t *testing.T) {
	r := NewRecorder("", nil)
	r.Navigate(context.Background(), "/a")

	h := r.History()
	h[0] = "/mutated"
	assert.Equal(t, []string{"/a"}, r.History())
}

func TestFunc_Adapter(t *testing.T) {
	var got string
	var n Navigator = Func(func(_ context.Context, loc string) { got = loc })
	n.Navigate(context.Background(), LoginPath)
	assert.Equal(t, LoginPath, got)
}
