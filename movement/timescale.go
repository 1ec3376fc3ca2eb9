package movement

// MinScale is the lowest simulation rate a lease may request.
const MinScale = 0.001

// Tick is the elapsed time of one step. Sim is scaled by the current
// simulation rate, Real is wall-clock time.
type Tick struct {
	Sim  float64
	Real float64
}

// TimeScale owns the process-wide simulation rate. Effects never write the
// rate directly: they acquire a lease and release it when done. The
// effective rate is the slowest active lease, and the base rate comes back
// exactly when the last lease is released, so overlapping freezes compose.
type TimeScale struct {
	base   float64
	leases map[*ScaleLease]struct{}
}

// ScaleLease is one outstanding request for a lowered simulation rate.
type ScaleLease struct {
	owner *TimeScale
	scale float64
}

// NewTimeScale creates a time scale running at base (1 when base <= 0).
func NewTimeScale(base float64) *TimeScale {
	if base <= 0 {
		base = 1
	}
	return &TimeScale{base: base, leases: make(map[*ScaleLease]struct{}, 4)}
}

// Acquire requests scale until the returned lease is released.
func (t *TimeScale) Acquire(scale float64) *ScaleLease {
	if t == nil {
		return nil
	}
	if scale < MinScale {
		scale = MinScale
	}
	l := &ScaleLease{owner: t, scale: scale}
	t.leases[l] = struct{}{}
	return l
}

// Release drops the lease. Releasing twice, or a nil lease, is a no-op.
func (l *ScaleLease) Release() {
	if l == nil || l.owner == nil {
		return
	}
	delete(l.owner.leases, l)
	l.owner = nil
}

// Held reports whether the lease still affects the rate.
func (l *ScaleLease) Held() bool {
	return l != nil && l.owner != nil
}

// Scale returns the effective simulation rate.
func (t *TimeScale) Scale() float64 {
	if t == nil {
		return 1
	}
	s := t.base
	for l := range t.leases {
		if l.scale < s {
			s = l.scale
		}
	}
	return s
}

// Base returns the rate restored once every lease is released.
func (t *TimeScale) Base() float64 {
	if t == nil {
		return 1
	}
	return t.base
}

// SetBase changes the unleased rate.
func (t *TimeScale) SetBase(base float64) {
	if t == nil || base <= 0 {
		return
	}
	t.base = base
}

// Active returns the number of outstanding leases.
func (t *TimeScale) Active() int {
	if t == nil {
		return 0
	}
	return len(t.leases)
}

// Tick converts a real elapsed duration into a step tick at the current rate.
func (t *TimeScale) Tick(real float64) Tick {
	return Tick{Sim: real * t.Scale(), Real: real}
}
