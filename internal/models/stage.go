package models

import "github.com/oyilmaz/firsat/internal/types"

// Stage is a configured pipeline column. Stages are not persisted entities;
// they come from client configuration and their slice order is the display
// order, left to right.
type Stage struct {
	ID    types.StageID
	Label string
	Color string // hex, presentation only
}

// DefaultStages returns the stage set matching the backend's status
// enumeration, one column per enum value. Used when the config file defines
// no stages of its own. Extra columns can be configured, but the backend
// rejects status updates outside its enum, so the defaults stay within it.
func DefaultStages() []*Stage {
	return []*Stage{
		{ID: types.StageLead, Label: "Aday", Color: "#89b4fa"},
		{ID: types.StageOpportunity, Label: "Fırsat", Color: "#74c7ec"},
		{ID: types.StageQuoteSent, Label: "Teklif Verildi", Color: "#cba6f7"},
		{ID: types.StageOrderReceived, Label: "Sipariş Alındı", Color: "#f9e2af"},
		{ID: types.StageInvoiced, Label: "Faturalandı", Color: "#a6e3a1"},
		{ID: types.StageLost, Label: "Kaybedildi", Color: "#f38ba8"},
	}
}
