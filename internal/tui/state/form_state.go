package state

import (
	"charm.land/huh/v2"

	"github.com/oyilmaz/firsat/internal/types"
)

// FormState manages the deal form state: the huh form instance plus the
// field values it writes through pointers. Numeric fields are kept as
// strings because huh inputs edit text; the submit handler parses them.
type FormState struct {
	dealForm      *huh.Form       // The huh form instance
	editingDealID types.DealID    // ID of deal being edited (0 for new deal)
	title         string          // Form field: deal title
	source        string          // Form field: lead source
	value         string          // Form field: estimated value, raw text
	probability   string          // Form field: win probability percent, raw text
	accountID     types.AccountID // Form field: selected account (0 for none)
	confirm       bool            // Form field: confirmation (submit vs cancel)
}

// NewFormState creates a new FormState with default values.
func NewFormState() *FormState {
	return &FormState{
		confirm: true,
	}
}

// DealForm returns the current deal form instance.
func (s *FormState) DealForm() *huh.Form {
	return s.dealForm
}

// SetDealForm sets the deal form instance.
func (s *FormState) SetDealForm(form *huh.Form) {
	s.dealForm = form
}

// EditingDealID returns the ID of the deal being edited, 0 for a new deal.
func (s *FormState) EditingDealID() types.DealID {
	return s.editingDealID
}

// SetEditingDealID sets the deal ID being edited.
func (s *FormState) SetEditingDealID(id types.DealID) {
	s.editingDealID = id
}

// Title returns the current form title value.
func (s *FormState) Title() string {
	return s.title
}

// TitlePtr returns a pointer to the title value for huh field binding.
func (s *FormState) TitlePtr() *string {
	return &s.title
}

// Source returns the current form source value.
func (s *FormState) Source() string {
	return s.source
}

// SourcePtr returns a pointer to the source value for huh field binding.
func (s *FormState) SourcePtr() *string {
	return &s.source
}

// Value returns the raw estimated value text.
func (s *FormState) Value() string {
	return s.value
}

// ValuePtr returns a pointer to the value text for huh field binding.
func (s *FormState) ValuePtr() *string {
	return &s.value
}

// Probability returns the raw probability text.
func (s *FormState) Probability() string {
	return s.probability
}

// ProbabilityPtr returns a pointer to the probability text for huh field binding.
func (s *FormState) ProbabilityPtr() *string {
	return &s.probability
}

// AccountID returns the selected account ID, 0 for none.
func (s *FormState) AccountID() types.AccountID {
	return s.accountID
}

// AccountIDPtr returns a pointer to the account ID for huh field binding.
func (s *FormState) AccountIDPtr() *types.AccountID {
	return &s.accountID
}

// Confirm returns the confirmation value.
func (s *FormState) Confirm() bool {
	return s.confirm
}

// ConfirmPtr returns a pointer to the confirmation value for huh field binding.
func (s *FormState) ConfirmPtr() *bool {
	return &s.confirm
}

// Populate fills the form fields from existing values for editing.
func (s *FormState) Populate(id types.DealID, title, source, value, probability string, accountID types.AccountID) {
	s.editingDealID = id
	s.title = title
	s.source = source
	s.value = value
	s.probability = probability
	s.accountID = accountID
	s.confirm = true
}

// Clear resets all deal form fields to their default values.
func (s *FormState) Clear() {
	s.dealForm = nil
	s.editingDealID = 0
	s.title = ""
	s.source = ""
	s.value = ""
	s.probability = ""
	s.accountID = 0
	s.confirm = true
}
