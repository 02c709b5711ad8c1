package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnomalyEndpoints(t *testing.T) {
	for _, c := range []float64{0.5, 1, 2, 3.5, 8} {
		assert.Equal(t, 0.0, Anomaly(0, c), "E(0) with c=%v", c)

		// Approaches 2π from below as p -> 1
		gap := TwoPi
		for k := 1; k <= 6; k++ {
			near := Anomaly(1-math.Pow(10, -float64(k)), c)
			require.LessOrEqual(t, near, TwoPi, "c=%v k=%d", c, k)
			require.LessOrEqual(t, TwoPi-near, gap, "c=%v k=%d", c, k)
			gap = TwoPi - near
		}
		assert.Less(t, gap, 1e-2, "c=%v", c)
	}
}

func TestAnomalyUniformAtCurvatureOne(t *testing.T) {
	for i := 0; i < 1000; i++ {
		p := float64(i) / 1000
		if got, want := Anomaly(p, 1), TwoPi*p; got != want {
			t.Fatalf("Expected Anomaly(%v, 1) = %v, got %v", p, want, got)
		}
	}
}

func TestAnomalyMonotonic(t *testing.T) {
	tests := []struct {
		name      string
		curvature float64
	}{
		{"flat", 0.3},
		{"uniform", 1},
		{"smoothstep", 2},
		{"steep", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Interior sweep; at the far ends (1-p)^c underflows relative to p^c for steep curves
			prev := Anomaly(0, tt.curvature)
			for i := 20; i <= 1980; i++ {
				p := float64(i) / 2000
				cur := Anomaly(p, tt.curvature)
				require.Greater(t, cur, prev, "p=%v", p)
				require.Less(t, cur, TwoPi)
				prev = cur
			}
		})
	}
}

func TestAnomalySCurve(t *testing.T) {
	// Symmetric around the half orbit for any curvature
	assert.InDelta(t, math.Pi, Anomaly(0.5, 4), 1e-12)

	// Steeper curvature lingers near the start
	assert.Less(t, Anomaly(0.1, 4), Anomaly(0.1, 1))
	assert.Greater(t, Anomaly(0.4, 1), Anomaly(0.1, 1)+0.5)
}

func TestEllipsePoint(t *testing.T) {
	p := EllipsePoint(0, 51, 10, 9, 0, 15, 3)
	assert.InDelta(t, 71.41, p.X, 1e-2)
	assert.Equal(t, 3.0, p.Y)
	assert.InDelta(t, 15.0, p.Z, 1e-12)

	q := EllipsePoint(math.Pi/2, 51, 10, 9, 0, 15, 3)
	assert.InDelta(t, 0, q.X, 1e-9)
	assert.InDelta(t, 9*math.Sqrt(51)+15, q.Z, 1e-9)
}

func TestEllipseSemiAxesUseSqrtRadius(t *testing.T) {
	ax, az := EllipseSemiAxes(16, 2, 3)
	assert.Equal(t, 8.0, ax)
	assert.Equal(t, 12.0, az)

	ax, az = EllipseSemiAxes(0, 2, 3)
	assert.Equal(t, 0.0, ax)
	assert.Equal(t, 0.0, az)
}

func TestV3FIsFinite(t *testing.T) {
	assert.True(t, V3FIsFinite(Vec3F{1, 2, 3}))
	assert.False(t, V3FIsFinite(Vec3F{math.NaN(), 0, 0}))
	assert.False(t, V3FIsFinite(Vec3F{0, math.Inf(1), 0}))
	assert.False(t, V3FIsFinite(Vec3F{0, 0, math.Inf(-1)}))
}

func TestV3FOps(t *testing.T) {
	a := Vec3F{1, 2, 3}
	b := Vec3F{4, 6, 3}
	assert.Equal(t, 25.0, V3FDistSq(a, b))
	assert.Equal(t, Vec3F{0, 0, 1}, V3FCross(Vec3F{1, 0, 0}, Vec3F{0, 1, 0}))
	assert.InDelta(t, 1.0, V3FMag(V3FNormalize(b)), 1e-12)
	assert.Equal(t, Vec3F{}, V3FNormalize(Vec3F{}))
}

func TestFastRandDeterministic(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)
	for i := 0; i < 100; i++ {
		va, vb := a.Float64(), b.Float64()
		require.Equal(t, va, vb)
		require.GreaterOrEqual(t, va, 0.0)
		require.Less(t, va, 1.0)
	}

	// Zero seed is remapped, not stuck at zero
	z := NewFastRand(0)
	assert.NotZero(t, z.Next())
}

func TestFastRandRange(t *testing.T) {
	r := NewFastRand(7)
	for i := 0; i < 1000; i++ {
		v := r.Range(-250, 250)
		require.GreaterOrEqual(t, v, -250.0)
		require.LessOrEqual(t, v, 250.0)
	}
	assert.Equal(t, 0, r.Intn(0))
}
