package status

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricMapGetCachesPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Counters.Get("sim.ticks")
	b := r.Counters.Get("sim.ticks")
	require.Same(t, a, b)

	a.Add(3)
	assert.Equal(t, int64(3), b.Load())
}

func TestMetricMapLookup(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Gauges.Lookup("sim.bodies")
	assert.False(t, ok)
	assert.Zero(t, r.Gauges.Count(), "lookup must not register")

	r.Gauges.Get("sim.bodies").Store(9)
	g, ok := r.Gauges.Lookup("sim.bodies")
	require.True(t, ok)
	assert.Equal(t, 9.0, g.Load())
}

func TestMetricMapRangeSorted(t *testing.T) {
	r := NewRegistry()
	for _, k := range []string{"stars.touched", "sim.faults", "sim.ticks", "stars.recycled"} {
		r.Counters.Get(k)
	}
	r.Gauges.Get("sim.bodies")

	var keys []string
	r.Counters.Range(func(key string, _ *atomic.Int64) {
		keys = append(keys, key)
	})
	assert.Equal(t, []string{"sim.faults", "sim.ticks", "stars.recycled", "stars.touched"}, keys)
	assert.Equal(t, 5, r.TotalCount())
}

func TestAtomicFloatConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 4000.0, f.Load())
}
