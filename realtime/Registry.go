package realtime

import (
	"sync"
)

// Conn is the write side of a live client connection.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
}

// Registry maps a user id to its active connection. One process-wide
// instance, passed into the handlers that need it. A user connecting
// twice overwrites the stored handle (last write wins, multi-device
// delivery is not supported). Nothing is persisted: after a restart the
// registry is empty and clients re-join.
type Registry struct {
	mut   sync.Mutex
	conns map[string]Conn
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]Conn),
	}
}

func (r *Registry) Register(userID string, conn Conn) {
	if userID == "" || conn == nil {
		return
	}
	r.mut.Lock()
	r.conns[userID] = conn
	r.mut.Unlock()
}

// Unregister removes the binding for userID, but only if it still
// points at conn. A nil conn removes unconditionally. The guard keeps a
// dying socket's cleanup from evicting a fresh reconnect.
func (r *Registry) Unregister(userID string, conn Conn) {
	r.mut.Lock()
	defer r.mut.Unlock()
	if conn == nil || r.conns[userID] == conn {
		delete(r.conns, userID)
	}
}

func (r *Registry) Resolve(userID string) (Conn, bool) {
	r.mut.Lock()
	defer r.mut.Unlock()
	conn, ok := r.conns[userID]
	return conn, ok
}

// Online reports how many users currently have a connection bound.
func (r *Registry) Online() int {
	r.mut.Lock()
	defer r.mut.Unlock()
	return len(r.conns)
}

// snapshot copies the current bindings so callers can fan out without
// holding the registry lock across socket writes.
func (r *Registry) snapshot() map[string]Conn {
	r.mut.Lock()
	defer r.mut.Unlock()
	out := make(map[string]Conn, len(r.conns))
	for id, conn := range r.conns {
		out[id] = conn
	}
	return out
}
