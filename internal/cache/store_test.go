package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nisarg-M-Patel/green-MoE/internal/carbon"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	t   time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestStore(ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 6, 28, 14, 0, 0, 0, time.UTC)}
	s := NewStore(ttl)
	s.now = clock.now
	return s, clock
}

func TestGetAfterPut(t *testing.T) {
	s, _ := newTestStore(30 * time.Minute)

	want := carbon.CarbonReading{Region: "us-west1", CarbonIntensity: 95.7}
	s.Put("us-west1", want)

	got, ok := s.Get("us-west1")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestGetMissing(t *testing.T) {
	s, _ := newTestStore(30 * time.Minute)

	_, ok := s.Get("us-east1")
	assert.False(t, ok)
}

func TestExpiryTreatedAsAbsent(t *testing.T) {
	s, clock := newTestStore(30 * time.Minute)
	s.Put("us-west1", carbon.CarbonReading{Region: "us-west1"})

	clock.advance(29 * time.Minute)
	_, ok := s.Get("us-west1")
	assert.True(t, ok, "entry inside TTL should be served")

	clock.advance(2 * time.Minute)
	_, ok = s.Get("us-west1")
	assert.False(t, ok, "entry past TTL must read as absent")
}

func TestPutRestartsTTL(t *testing.T) {
	s, clock := newTestStore(30 * time.Minute)
	s.Put("us-west1", carbon.CarbonReading{Region: "us-west1", CarbonIntensity: 100})

	clock.advance(25 * time.Minute)
	s.Put("us-west1", carbon.CarbonReading{Region: "us-west1", CarbonIntensity: 200})

	clock.advance(20 * time.Minute)
	got, ok := s.Get("us-west1")
	require.True(t, ok)
	assert.InDelta(t, 200.0, got.CarbonIntensity, 0.001, "last write wins")
}

func TestZeroTTLUsesDefault(t *testing.T) {
	s := NewStore(0)
	assert.Equal(t, DefaultTTL, s.ttl)
}

func TestConcurrentAccess(t *testing.T) {
	s, _ := newTestStore(30 * time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Put("us-west2", carbon.CarbonReading{Region: "us-west2"})
				s.Get("us-west2")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.Len())
}
