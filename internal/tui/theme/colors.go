package theme

import "github.com/oyilmaz/firsat/internal/config"

// Colors holds the current theme colors, initialized by Init
var (
	Highlight      string
	Subtle         string
	Normal         string
	Title          string
	Create         string
	Edit           string
	Danger         string
	Background     string
	ColumnBg       string
	ColumnBorder   string
	CardBorder     string
	CardBg         string
	SelectedBorder string
	SelectedBg     string
	GrabbedBorder  string
	InfoFg         string
	InfoBg         string
	WarningFg      string
	WarningBg      string
	ErrorFg        string
	ErrorBg        string
	StatusBarBg    string
	StatusBarText  string
)

// Init initializes the theme colors from the given color scheme
func Init(colors config.ColorScheme) {
	Highlight = colors.Accent
	Subtle = colors.Subtle
	Normal = colors.Normal
	Title = colors.Title
	Create = colors.Create
	Edit = colors.Edit
	Danger = colors.Danger
	Background = colors.Background
	ColumnBg = colors.ColumnBackground
	ColumnBorder = colors.ColumnBorder
	CardBorder = colors.CardBorder
	CardBg = colors.CardBackground
	SelectedBorder = colors.SelectedBorder
	SelectedBg = colors.SelectedBg
	GrabbedBorder = colors.GrabbedBorder
	InfoFg = colors.InfoFg
	InfoBg = colors.InfoBg
	WarningFg = colors.WarningFg
	WarningBg = colors.WarningBg
	ErrorFg = colors.ErrorFg
	ErrorBg = colors.ErrorBg
	StatusBarBg = colors.StatusBarBg
	StatusBarText = colors.StatusBarText
}
