package config

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (selections, titles, highlights)
	Accent string `yaml:"accent"`

	// Background colors
	Background       string `yaml:"background"`
	ColumnBackground string `yaml:"column_background"`

	// Semantic colors
	Create string `yaml:"create"` // Green - creation forms
	Edit   string `yaml:"edit"`   // Blue - edit forms
	Danger string `yaml:"danger"` // Red - lost deals, destructive actions

	// UI element colors
	ColumnBorder   string `yaml:"column_border"`
	CardBorder     string `yaml:"card_border"`
	CardBackground string `yaml:"card_background"`
	SelectedBorder string `yaml:"selected_border"`
	SelectedBg     string `yaml:"selected_bg"`
	GrabbedBorder  string `yaml:"grabbed_border"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`

	// Status bar
	StatusBarBg   string `yaml:"status_bar_bg"`
	StatusBarText string `yaml:"status_bar_text"`
}

// DefaultColorScheme returns the default color scheme (purple theme)
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Preset: "default",

		Accent: "#874BFD",

		Background:       "#1C1C1C",
		ColumnBackground: "#262626",

		Create: "#5FD75F",
		Edit:   "#5F87D7",
		Danger: "#FF5F5F",

		ColumnBorder:   "#5F87D7",
		CardBorder:     "#585858",
		CardBackground: "#262626",
		SelectedBorder: "#D75FD7",
		SelectedBg:     "#3A3A3A",
		GrabbedBorder:  "#FFD700",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		InfoFg:    "#00AFFF",
		InfoBg:    "#00005F",
		WarningFg: "#FFD700",
		WarningBg: "#875F00",
		ErrorFg:   "#FF0000",
		ErrorBg:   "#5F0000",

		StatusBarBg:   "#874BFD",
		StatusBarText: "#D0D0D0",
	}
}

// MonochromeColorScheme returns a black and white color scheme
func MonochromeColorScheme() ColorScheme {
	return ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		Background:       "#000000",
		ColumnBackground: "#121212",

		Create: "#FFFFFF",
		Edit:   "#FFFFFF",
		Danger: "#FFFFFF",

		ColumnBorder:   "#808080",
		CardBorder:     "#585858",
		CardBackground: "#121212",
		SelectedBorder: "#FFFFFF",
		SelectedBg:     "#303030",
		GrabbedBorder:  "#FFFFFF",

		Title:  "#FFFFFF",
		Subtle: "#808080",
		Normal: "#D0D0D0",

		InfoFg:    "#FFFFFF",
		InfoBg:    "#303030",
		WarningFg: "#000000",
		WarningBg: "#D0D0D0",
		ErrorFg:   "#000000",
		ErrorBg:   "#FFFFFF",

		StatusBarBg:   "#303030",
		StatusBarText: "#FFFFFF",
	}
}

func presetScheme(name string) ColorScheme {
	switch name {
	case "monochrome":
		return MonochromeColorScheme()
	default:
		return DefaultColorScheme()
	}
}

// ApplyDefaults fills in missing color values using the preset as base.
// Values set explicitly in the config file win over the preset.
func (c *ColorScheme) ApplyDefaults() {
	preset := presetScheme(c.Preset)

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&c.Accent, preset.Accent)
	fill(&c.Background, preset.Background)
	fill(&c.ColumnBackground, preset.ColumnBackground)
	fill(&c.Create, preset.Create)
	fill(&c.Edit, preset.Edit)
	fill(&c.Danger, preset.Danger)
	fill(&c.ColumnBorder, preset.ColumnBorder)
	fill(&c.CardBorder, preset.CardBorder)
	fill(&c.CardBackground, preset.CardBackground)
	fill(&c.SelectedBorder, preset.SelectedBorder)
	fill(&c.SelectedBg, preset.SelectedBg)
	fill(&c.GrabbedBorder, preset.GrabbedBorder)
	fill(&c.Title, preset.Title)
	fill(&c.Subtle, preset.Subtle)
	fill(&c.Normal, preset.Normal)
	fill(&c.InfoFg, preset.InfoFg)
	fill(&c.InfoBg, preset.InfoBg)
	fill(&c.WarningFg, preset.WarningFg)
	fill(&c.WarningBg, preset.WarningBg)
	fill(&c.ErrorFg, preset.ErrorFg)
	fill(&c.ErrorBg, preset.ErrorBg)
	fill(&c.StatusBarBg, preset.StatusBarBg)
	fill(&c.StatusBarText, preset.StatusBarText)
}
