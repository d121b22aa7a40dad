package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	mu          sync.Mutex
	hits        int
	misses      int
	invalidated int
}

func (r *countingRecorder) Hit(string) { r.mu.Lock(); r.hits++; r.mu.Unlock() }

func (r *countingRecorder) Miss(string) { r.mu.Lock(); r.misses++; r.mu.Unlock() }

func (r *countingRecorder) Invalidated(_ string, n int) {
	r.mu.Lock()
	r.invalidated += n
	r.mu.Unlock()
}

func newTestMemory(t *testing.T) Store {
	t.Helper()
	s := NewMemory(0, nil)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMemory_SetThenGet(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	s.Set(ctx, "k", []byte("v"), time.Minute)

	got, ok := s.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemory_NeverSetIsMiss(t *testing.T) {
	s := newTestMemory(t)
	_, ok := s.Get(context.Background(), "nunca")
	assert.False(t, ok)
}

func TestMemory_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	s.Set(ctx, "k", []byte("v"), 20*time.Millisecond)
	time.Sleep(40 * time.Millisecond)

	_, ok := s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemory_ExpiredMissPurgesEntry(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(0, nil).(*memoryStore)

	s.Set(ctx, "k", []byte("v"), 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	require.Equal(t, 1, s.c.ItemCount(), "expired entry still stored before access")
	_, ok := s.Get(ctx, "k")
	require.False(t, ok)
	assert.Equal(t, 0, s.c.ItemCount())
}

func TestMemory_Overwrite(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	s.Set(ctx, "k", []byte("v1"), time.Minute)
	s.Set(ctx, "k", []byte("v2"), time.Minute)

	got, ok := s.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), got)
}

func TestMemory_NonPositiveTTLIsNotCached(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	s.Set(ctx, "zero", []byte("v"), 0)
	_, ok := s.Get(ctx, "zero")
	assert.False(t, ok)

	s.Set(ctx, "neg", []byte("v"), -time.Second)
	_, ok = s.Get(ctx, "neg")
	assert.False(t, ok)

	// Un Set con ttl 0 sobre una key viva la deja inválida.
	s.Set(ctx, "k", []byte("v"), time.Minute)
	s.Set(ctx, "k", []byte("v2"), 0)
	_, ok = s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	s.Set(ctx, "k", []byte("v"), time.Minute)
	s.Delete(ctx, "k")
	s.Delete(ctx, "no-existe")

	_, ok := s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemory_InvalidatePrefix(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	s.Set(ctx, "pacientes_1_a", []byte("1a"), time.Minute)
	s.Set(ctx, "pacientes_2_b", []byte("2b"), time.Minute)
	s.Set(ctx, "stats_1", []byte("s1"), time.Minute)

	removed := s.InvalidatePrefix(ctx, "pacientes_1")
	assert.Equal(t, 1, removed)

	_, ok := s.Get(ctx, "pacientes_1_a")
	assert.False(t, ok)
	_, ok = s.Get(ctx, "pacientes_2_b")
	assert.True(t, ok)
	_, ok = s.Get(ctx, "stats_1")
	assert.True(t, ok)
}

func TestMemory_InvalidatePrefixIsRawStringMatch(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	s.Set(ctx, "pacientes_1_a", []byte("x"), time.Minute)
	s.Set(ctx, "pacientes_12_a", []byte("x"), time.Minute)

	assert.Equal(t, 2, s.InvalidatePrefix(ctx, "pacientes_1"))
}

func TestMemory_EmptyPrefixClearsEverything(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	s.Set(ctx, "a", []byte("x"), time.Minute)
	s.Set(ctx, "b", []byte("x"), time.Minute)

	assert.Equal(t, 2, s.InvalidatePrefix(ctx, ""))
	assert.Zero(t, s.Stats(ctx).Keys)
}

func TestMemory_Clear(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	for i := 0; i < 5; i++ {
		s.Set(ctx, fmt.Sprintf("k%d", i), []byte("x"), time.Minute)
	}
	s.Clear(ctx)

	for i := 0; i < 5; i++ {
		_, ok := s.Get(ctx, fmt.Sprintf("k%d", i))
		assert.False(t, ok)
	}
}

func TestMemory_StatsCountsOnlyLiveEntries(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	s.Set(ctx, "vivo", []byte("x"), time.Minute)
	s.Set(ctx, "efimero", []byte("x"), 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	st := s.Stats(ctx)
	assert.Equal(t, DriverMemory, st.Driver)
	assert.Equal(t, int64(1), st.Keys)
}

func TestMemory_StatsHitsAndMisses(t *testing.T) {
	ctx := context.Background()
	rec := &countingRecorder{}
	s := NewMemory(0, rec)

	s.Set(ctx, "k", []byte("x"), time.Minute)
	s.Get(ctx, "k")
	s.Get(ctx, "k")
	s.Get(ctx, "otra")
	s.InvalidatePrefix(ctx, "k")

	st := s.Stats(ctx)
	assert.Equal(t, int64(2), st.Hits)
	assert.Equal(t, int64(1), st.Misses)
	assert.Equal(t, int64(1), st.Invalidations)
	assert.Equal(t, 2, rec.hits)
	assert.Equal(t, 1, rec.misses)
	assert.Equal(t, 1, rec.invalidated)
}

func TestMemory_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	in := []byte("abc")
	s.Set(ctx, "k", in, time.Minute)
	in[0] = 'X'

	out, _ := s.Get(ctx, "k")
	out[1] = 'Y'

	again, _ := s.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), again)
}

func TestMemory_SweepPurgesExpired(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(10*time.Millisecond, nil).(*memoryStore)
	t.Cleanup(func() { _ = s.Close() })

	s.Set(ctx, "k", []byte("x"), 5*time.Millisecond)
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.c.ItemCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestMemory_CloseStopsSweep(t *testing.T) {
	s := NewMemory(5*time.Millisecond, nil).(*memoryStore)
	require.NoError(t, s.Close())

	select {
	case <-s.done:
	default:
		t.Fatal("el barrido sigue corriendo después de Close")
	}
	// idempotente
	require.NoError(t, s.Close())

	// sin barrido, Close no bloquea
	require.NoError(t, NewMemory(0, nil).Close())
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("pacientes_%d_%d", g, i%10)
				s.Set(ctx, key, []byte("x"), time.Minute)
				s.Get(ctx, key)
				if i%50 == 0 {
					s.InvalidatePrefix(ctx, fmt.Sprintf("pacientes_%d_", g))
				}
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, s.Stats(ctx).Keys, int64(80))
}

type pacienteFixture struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

func TestMemory_PatientListScenario(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	list := []pacienteFixture{{1, "Ana"}, {2, "Beto"}, {3, "Carla"}}
	b, err := json.Marshal(list)
	require.NoError(t, err)

	s.Set(ctx, "pacientes_5_all_all_name", b, 5*time.Minute)

	got, ok := s.Get(ctx, "pacientes_5_all_all_name")
	require.True(t, ok)
	var decoded []pacienteFixture
	require.NoError(t, json.Unmarshal(got, &decoded))
	assert.Equal(t, list, decoded)

	s.InvalidatePrefix(ctx, "pacientes_5")
	_, ok = s.Get(ctx, "pacientes_5_all_all_name")
	assert.False(t, ok)
}

func TestNew_Drivers(t *testing.T) {
	s, err := New(Config{Driver: "memory"})
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, s.Stats(context.Background()).Driver)

	s, err = New(Config{})
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, s.Stats(context.Background()).Driver)

	_, err = New(Config{Driver: "memcached"})
	assert.Error(t, err)
}
