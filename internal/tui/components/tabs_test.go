package components

import (
	"os"
	"strings"
	"testing"

	"github.com/oyilmaz/firsat/internal/config"
)

func TestMain(m *testing.M) {
	// Package styles must be initialized before use; see styles.go.
	InitStyles(config.DefaultColorScheme())
	os.Exit(m.Run())
}

func TestViewTabsOrder(t *testing.T) {
	tabs := ViewTabs()
	want := []Tab{
		{ID: TabBoard, Label: "Board"},
		{ID: TabDashboard, Label: "Dashboard"},
		{ID: TabAccounts, Label: "Accounts"},
	}
	if len(tabs) != len(want) {
		t.Fatalf("got %d tabs, want %d", len(tabs), len(want))
	}
	for i, tab := range tabs {
		if tab != want[i] {
			t.Errorf("tab %d = %+v, want %+v", i, tab, want[i])
		}
	}
}

func TestRenderTabs(t *testing.T) {
	out := RenderTabs(ViewTabs(), TabBoard, 80, "")

	for _, label := range []string{"Board", "Dashboard", "Accounts"} {
		if !strings.Contains(out, label) {
			t.Errorf("tab bar missing label %q", label)
		}
	}

	// Switching the active tab must change the rendering
	other := RenderTabs(ViewTabs(), TabDashboard, 80, "")
	if out == other {
		t.Error("active tab change did not affect rendering")
	}
}

func TestRenderTabsWithNotification(t *testing.T) {
	out := RenderTabs(ViewTabs(), TabAccounts, 80, "[Saved]")
	if !strings.Contains(out, "[Saved]") {
		t.Error("tab bar missing notification content")
	}
}
