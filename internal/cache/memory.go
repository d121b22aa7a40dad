package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// memoryStore implementa Store sobre go-cache.
//
// mu serializa las operaciones del store: cada llamada es atómica respecto
// de las demás (Get + purga lazy, barrido por prefijo).
type memoryStore struct {
	mu  sync.Mutex
	c   *gocache.Cache
	rec Recorder

	hits          int64
	misses        int64
	invalidations int64

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemory crea un store en memoria. sweep > 0 arranca un barrido periódico
// de entradas expiradas que Close detiene. El janitor de go-cache queda
// deshabilitado.
func NewMemory(sweep time.Duration, rec Recorder) Store {
	if rec == nil {
		rec = NoopRecorder{}
	}
	m := &memoryStore{
		c:   gocache.New(gocache.NoExpiration, 0),
		rec: rec,
	}
	if sweep > 0 {
		m.stop = make(chan struct{})
		m.done = make(chan struct{})
		go m.sweep(sweep)
	}
	return m
}

func (m *memoryStore) sweep(every time.Duration) {
	defer close(m.done)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-t.C:
			m.mu.Lock()
			m.c.DeleteExpired()
			m.mu.Unlock()
		}
	}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, found := m.c.Get(key)
	if !found {
		// go-cache oculta las entradas expiradas pero no las borra.
		m.c.Delete(key)
		m.misses++
		m.rec.Miss(DriverMemory)
		return nil, false
	}

	b, _ := v.([]byte)
	m.hits++
	m.rec.Hit(DriverMemory)
	return clone(b), true
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ttl <= 0 {
		m.c.Delete(key)
		return
	}
	m.c.Set(key, clone(value), ttl)
}

func (m *memoryStore) Delete(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.c.Delete(key)
}

func (m *memoryStore) InvalidatePrefix(_ context.Context, prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.c.DeleteExpired()

	removed := 0
	for k := range m.c.Items() {
		if strings.HasPrefix(k, prefix) {
			m.c.Delete(k)
			removed++
		}
	}

	m.invalidations++
	m.rec.Invalidated(DriverMemory, removed)
	return removed
}

func (m *memoryStore) Clear(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.c.Flush()
}

func (m *memoryStore) Stats(_ context.Context) Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Items() solo copia entradas no expiradas.
	return Stats{
		Driver:        DriverMemory,
		Keys:          int64(len(m.c.Items())),
		Hits:          m.hits,
		Misses:        m.misses,
		Invalidations: m.invalidations,
	}
}

// Close detiene el barrido y vacía el store. Es idempotente.
func (m *memoryStore) Close() error {
	m.closeOnce.Do(func() {
		if m.stop != nil {
			close(m.stop)
			<-m.done
		}
	})
	m.Clear(context.Background())
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
