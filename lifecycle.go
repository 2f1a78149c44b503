package mochi

import "time"

// Phase is the loading phase of a card session.
type Phase uint8

const (
	PhaseLoading Phase = iota // waiting for the background asset
	PhaseReady                // asset loaded and settle delay elapsed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// LifecycleState is the observable state of a Lifecycle. CelebrationActive is
// orthogonal to Phase.
type LifecycleState struct {
	Phase             Phase
	CelebrationActive bool
}

// Loading reports whether the phase is PhaseLoading.
func (s LifecycleState) Loading() bool { return s.Phase == PhaseLoading }

// Ready reports whether the phase is PhaseReady.
func (s LifecycleState) Ready() bool { return s.Phase == PhaseReady }

// DefaultSettleDelay is the wait between the asset-ready signal and the
// Loading to Ready transition.
const DefaultSettleDelay = 1500 * time.Millisecond

// Lifecycle owns the session's LifecycleState. Both transitions are one-way:
// Loading to Ready after AssetReady plus the settle delay, and celebration
// false to true on Celebrate. If AssetReady never arrives the state stays
// Loading; there is no timeout.
type Lifecycle struct {
	state   LifecycleState
	settle  time.Duration
	timer   *Deferred
	signals int
	closed  bool
	changed listeners[LifecycleState]
}

// NewLifecycle returns a Lifecycle in PhaseLoading. A negative settle delay is
// treated as zero.
func NewLifecycle(settle time.Duration) *Lifecycle {
	return &Lifecycle{settle: max(settle, 0)}
}

// State returns the current state.
func (l *Lifecycle) State() LifecycleState {
	return l.state
}

// SettleDelay returns the configured delay.
func (l *Lifecycle) SettleDelay() time.Duration {
	return l.settle
}

// OnChange registers fn for every state change.
func (l *Lifecycle) OnChange(fn func(LifecycleState)) CallbackHandle {
	return l.changed.add(fn)
}

// AssetReady records the external ready signal and schedules the transition
// after the settle delay. Only the first call has an effect.
func (l *Lifecycle) AssetReady() {
	l.signals++
	if l.closed || l.signals > 1 || l.state.Phase != PhaseLoading {
		return
	}
	debugf("asset ready, settling for %v", l.settle)
	l.timer = NewDeferred(l.settle, l.becomeReady)
}

// Update advances the settle timer by dt.
func (l *Lifecycle) Update(dt time.Duration) {
	l.timer.Update(dt)
}

// Settling reports whether the ready signal arrived and the settle delay is
// still running.
func (l *Lifecycle) Settling() bool {
	return l.timer.Pending()
}

// Celebrate activates the celebration. It has no precondition on the phase
// and is irreversible; repeated calls are no-ops.
func (l *Lifecycle) Celebrate() {
	if l.closed || l.state.CelebrationActive {
		return
	}
	l.state.CelebrationActive = true
	debugf("celebration active")
	l.changed.emit(l.state)
}

// Close cancels a pending settle timer and drops subscribers. The state is
// frozen afterwards.
func (l *Lifecycle) Close() {
	if l.timer.Cancel() {
		debugf("settle timer canceled")
	}
	l.closed = true
	l.changed.clear()
}

func (l *Lifecycle) becomeReady() {
	if l.closed {
		return
	}
	l.state.Phase = PhaseReady
	debugf("phase %s", l.state.Phase)
	l.changed.emit(l.state)
}
