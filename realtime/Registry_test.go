package realtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	frames []Frame
	err    error
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.frames = append(f.frames, v.(Frame))
	return nil
}

func TestRegistry(t *testing.T) {
	t.Run("register and resolve", func(t *testing.T) {
		r := NewRegistry()
		conn := &fakeConn{}
		r.Register("alice", conn)

		got, ok := r.Resolve("alice")
		require.True(t, ok)
		require.Same(t, conn, got)
		require.Equal(t, 1, r.Online())
	})

	t.Run("resolve unknown user", func(t *testing.T) {
		r := NewRegistry()
		_, ok := r.Resolve("nobody")
		require.False(t, ok)
	})

	t.Run("reconnect overwrites previous binding", func(t *testing.T) {
		r := NewRegistry()
		first := &fakeConn{}
		second := &fakeConn{}
		r.Register("alice", first)
		r.Register("alice", second)

		got, ok := r.Resolve("alice")
		require.True(t, ok)
		require.Same(t, second, got)
		require.Equal(t, 1, r.Online())
	})

	t.Run("unregister removes binding", func(t *testing.T) {
		r := NewRegistry()
		conn := &fakeConn{}
		r.Register("alice", conn)
		r.Unregister("alice", conn)

		_, ok := r.Resolve("alice")
		require.False(t, ok)
		require.Equal(t, 0, r.Online())
	})

	t.Run("stale connection cannot evict a reconnect", func(t *testing.T) {
		r := NewRegistry()
		stale := &fakeConn{}
		fresh := &fakeConn{}
		r.Register("alice", stale)
		r.Register("alice", fresh)

		r.Unregister("alice", stale)

		got, ok := r.Resolve("alice")
		require.True(t, ok)
		require.Same(t, fresh, got)
	})

	t.Run("nil conn unregisters unconditionally", func(t *testing.T) {
		r := NewRegistry()
		r.Register("alice", &fakeConn{})
		r.Unregister("alice", nil)
		require.Equal(t, 0, r.Online())
	})

	t.Run("empty user id is ignored", func(t *testing.T) {
		r := NewRegistry()
		r.Register("", &fakeConn{})
		require.Equal(t, 0, r.Online())
	})
}
