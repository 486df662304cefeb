package board

import "github.com/oyilmaz/firsat/internal/types"

// Phase is the drag session state. Dropping and Cancelled are transient:
// the manager passes through them and returns to Idle within the same event.
type Phase int

const (
	Idle Phase = iota
	Pending
	Dragging
)

// PointerEvent is an abstract pointer position in cell coordinates. The
// session manager never touches toolkit event types; the TUI translates
// mouse messages into these.
type PointerEvent struct {
	X int
	Y int
}

// HitTester resolves pointer coordinates into board targets. The renderer
// registers column and card geometry each frame; the session manager only
// asks questions.
type HitTester interface {
	// DealAt returns the deal card under the pointer and the stage it sits in
	DealAt(x, y int) (types.DealID, types.StageID, bool)
	// StageAt returns the column under the pointer
	StageAt(x, y int) (types.StageID, bool)
}

// Drop is the hand-off from a completed drag to the committer
type Drop struct {
	Deal types.DealID
	From types.StageID
	To   types.StageID
}

// Session is the single in-progress drag gesture. It exists only between
// pointer-down and drop/cancel, is never persisted, and at most one exists
// at a time.
type Session struct {
	deal   types.DealID
	origin types.StageID

	startX, startY int
	x, y           int

	hover    types.StageID
	hasHover bool
}

// Manager tracks the single active drag session. Zero or one session;
// starting a new drag while one is active is impossible because every
// pointer-down while non-idle is treated as a cancel-and-restart.
type Manager struct {
	hit       HitTester
	threshold int

	phase   Phase
	session *Session
}

// NewManager creates a session manager. threshold is the minimum Chebyshev
// cell distance the pointer must travel before a press becomes a drag, the
// guard against accidental drags on click.
func NewManager(hit HitTester, threshold int) *Manager {
	if threshold < 1 {
		threshold = 1
	}
	return &Manager{hit: hit, threshold: threshold}
}

// Phase returns the current state of the machine
func (m *Manager) Phase() Phase {
	return m.phase
}

// Session returns the active session, nil while Idle
func (m *Manager) Session() *Session {
	return m.session
}

// PointerDown arms a potential drag when a deal card is under the pointer.
// The session stays Pending until the movement threshold is exceeded.
func (m *Manager) PointerDown(ev PointerEvent) {
	if m.phase != Idle {
		m.reset()
	}

	deal, stage, ok := m.hit.DealAt(ev.X, ev.Y)
	if !ok {
		return
	}

	m.phase = Pending
	m.session = &Session{
		deal:   deal,
		origin: stage,
		startX: ev.X,
		startY: ev.Y,
		x:      ev.X,
		y:      ev.Y,
	}
}

// PointerMove promotes a pending press to Dragging once the threshold is
// exceeded, and while Dragging updates the floating position and the hover
// target (which column, if any, the pointer currently overlaps).
func (m *Manager) PointerMove(ev PointerEvent) {
	if m.session == nil {
		return
	}

	m.session.x = ev.X
	m.session.y = ev.Y

	if m.phase == Pending {
		if chebyshev(ev.X-m.session.startX, ev.Y-m.session.startY) < m.threshold {
			return
		}
		m.phase = Dragging
	}

	stage, ok := m.hit.StageAt(ev.X, ev.Y)
	m.session.hover = stage
	m.session.hasHover = ok
}

// PointerUp ends the gesture. A drop onto a valid column different from the
// origin yields a Drop for the committer; anything else (same column, no
// column under the pointer, threshold never exceeded) is a cancel with no
// side effects. Either way the machine returns to Idle.
func (m *Manager) PointerUp(ev PointerEvent) (Drop, bool) {
	defer m.reset()

	if m.phase != Dragging || m.session == nil {
		return Drop{}, false
	}

	target, ok := m.hit.StageAt(ev.X, ev.Y)
	if !ok || target == m.session.origin {
		return Drop{}, false
	}

	return Drop{
		Deal: m.session.deal,
		From: m.session.origin,
		To:   target,
	}, true
}

// Cancel aborts the gesture explicitly (Escape, focus loss). No side effects.
func (m *Manager) Cancel() {
	m.reset()
}

// Grab starts a keyboard-driven session on the given deal, skipping the
// movement threshold. The subsequent HoverStage/Commit calls reuse the same
// machine, so keyboard moves honor every pointer-path invariant.
func (m *Manager) Grab(deal types.DealID, origin types.StageID) {
	if m.phase != Idle {
		m.reset()
	}
	m.phase = Dragging
	m.session = &Session{deal: deal, origin: origin, hover: origin, hasHover: true}
}

// HoverStage retargets a keyboard-driven session
func (m *Manager) HoverStage(stage types.StageID) {
	if m.phase != Dragging || m.session == nil {
		return
	}
	m.session.hover = stage
	m.session.hasHover = true
}

// Commit ends a keyboard-driven session on its current hover target,
// with the same valid-and-different rule as PointerUp.
func (m *Manager) Commit() (Drop, bool) {
	defer m.reset()

	if m.phase != Dragging || m.session == nil {
		return Drop{}, false
	}
	if !m.session.hasHover || m.session.hover == m.session.origin {
		return Drop{}, false
	}
	return Drop{
		Deal: m.session.deal,
		From: m.session.origin,
		To:   m.session.hover,
	}, true
}

func (m *Manager) reset() {
	m.phase = Idle
	m.session = nil
}

// Deal returns the dragged deal's identity
func (s *Session) Deal() types.DealID {
	return s.deal
}

// Origin returns the column the drag started in
func (s *Session) Origin() types.StageID {
	return s.origin
}

// Hover returns the current candidate target column, if any
func (s *Session) Hover() (types.StageID, bool) {
	return s.hover, s.hasHover
}

// Position returns the pointer cell the floating overlay should follow
func (s *Session) Position() (x, y int) {
	return s.x, s.y
}

func chebyshev(dx, dy int) int {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
