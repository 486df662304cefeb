package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Deals
	AddDeal       string `yaml:"add_deal"`
	EditDeal      string `yaml:"edit_deal"`
	ViewDeal      string `yaml:"view_deal"`
	GrabDeal      string `yaml:"grab_deal"`
	MoveDealLeft  string `yaml:"move_deal_left"`
	MoveDealRight string `yaml:"move_deal_right"`

	// Navigation
	PrevColumn          string `yaml:"prev_column"`
	NextColumn          string `yaml:"next_column"`
	PrevDeal            string `yaml:"prev_deal"`
	NextDeal            string `yaml:"next_deal"`
	ScrollViewportLeft  string `yaml:"scroll_viewport_left"`
	ScrollViewportRight string `yaml:"scroll_viewport_right"`

	// Views
	ShowDashboard string `yaml:"show_dashboard"`
	ShowAccounts  string `yaml:"show_accounts"`
	ShowBoard     string `yaml:"show_board"`
	Refresh       string `yaml:"refresh"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		AddDeal:       "a",
		EditDeal:      "e",
		ViewDeal:      " ",
		GrabDeal:      "g",
		MoveDealLeft:  "H",
		MoveDealRight: "L",

		PrevColumn:          "h",
		NextColumn:          "l",
		PrevDeal:            "k",
		NextDeal:            "j",
		ScrollViewportLeft:  "[",
		ScrollViewportRight: "]",

		ShowDashboard: "1",
		ShowAccounts:  "2",
		ShowBoard:     "0",
		Refresh:       "r",

		ShowHelp: "?",
		Quit:     "q",
	}
}
