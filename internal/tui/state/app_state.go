package state

import (
	"time"

	"charm.land/bubbles/v2/viewport"

	"github.com/oyilmaz/firsat/internal/models"
)

// AppState manages application-level domain state that is not owned by the
// entity store: the currently open deal detail, offline status, and token
// expiry warnings. Deal and account data lives in the store; this holds
// transient view-level state derived from it.
type AppState struct {
	// detail is the deal currently shown in the detail popup, nil when closed
	detail *models.DealDetail

	// offline is true when the last refresh fell back to the local snapshot
	offline bool

	// loading is true while an initial or manual refresh is in flight
	loading bool

	// lastSync is when deals were last fetched from the backend
	lastSync time.Time

	// tokenWarning holds a human-readable token expiry warning, empty when none
	tokenWarning string

	// DetailViewport scrolls the detail popup body when it overflows the
	// terminal. Lazily initialized by the renderer.
	DetailViewport      viewport.Model
	DetailViewportReady bool
}

// NewAppState creates a new AppState with no data loaded.
func NewAppState() *AppState {
	return &AppState{}
}

// Detail returns the deal detail currently shown, or nil.
func (s *AppState) Detail() *models.DealDetail {
	return s.detail
}

// SetDetail sets the deal detail to show in the detail popup.
func (s *AppState) SetDetail(detail *models.DealDetail) {
	s.detail = detail
}

// ClearDetail closes the detail popup and resets its scroll position.
func (s *AppState) ClearDetail() {
	s.detail = nil
	s.DetailViewportReady = false
}

// Offline reports whether the app is showing snapshot data.
func (s *AppState) Offline() bool {
	return s.offline
}

// SetOffline updates the offline flag.
func (s *AppState) SetOffline(offline bool) {
	s.offline = offline
}

// Loading reports whether a refresh is in flight.
func (s *AppState) Loading() bool {
	return s.loading
}

// SetLoading updates the loading flag.
func (s *AppState) SetLoading(loading bool) {
	s.loading = loading
}

// LastSync returns when deals were last fetched from the backend.
func (s *AppState) LastSync() time.Time {
	return s.lastSync
}

// SetLastSync records a successful backend fetch time.
func (s *AppState) SetLastSync(t time.Time) {
	s.lastSync = t
}

// TokenWarning returns the current token expiry warning, empty when none.
func (s *AppState) TokenWarning() string {
	return s.tokenWarning
}

// SetTokenWarning updates the token expiry warning.
func (s *AppState) SetTokenWarning(warning string) {
	s.tokenWarning = warning
}
