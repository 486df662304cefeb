// Package huhforms builds the huh forms used for creating and editing
// deals. Forms bind to state through pointers so the submit handler can
// read the values after the form completes.
package huhforms

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/huh/v2"

	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/types"
)

const dealTitleMaxLength = 200

// CreateDealForm creates a huh form for adding/editing a deal.
// The account select is only shown when accounts have been loaded.
func CreateDealForm(
	title *string,
	source *string,
	value *string,
	probability *string,
	accountID *types.AccountID,
	accounts []*models.Account,
	confirm *bool,
) *huh.Form {
	var fields []huh.Field

	fields = append(fields,
		huh.NewInput().
			Key("title").
			Title("Title").
			Placeholder("Enter deal title...").
			Validate(validateTitle).
			Value(title),
	)

	fields = append(fields,
		huh.NewInput().
			Key("source").
			Title("Source").
			Placeholder("referral, web, fair...").
			Value(source),
	)

	fields = append(fields,
		huh.NewInput().
			Key("value").
			Title("Estimated value (₺)").
			Placeholder("0").
			Validate(validateAmount).
			Value(value),
	)

	fields = append(fields,
		huh.NewInput().
			Key("probability").
			Title("Win probability (%)").
			Placeholder("0-100").
			Validate(validatePercent).
			Value(probability),
	)

	if len(accounts) > 0 {
		options := []huh.Option[types.AccountID]{huh.NewOption("(none)", types.AccountID(0))}
		for _, account := range accounts {
			options = append(options, huh.NewOption(account.Title, account.ID))
		}

		fields = append(fields,
			huh.NewSelect[types.AccountID]().
				Key("account").
				Title("Account").
				Description("/ to filter").
				Options(options...).
				Value(accountID),
		)
	}

	fields = append(fields,
		huh.NewConfirm().
			Key("confirm").
			Title("Save this deal?").
			Affirmative("Yes").
			Negative("No").
			Value(confirm),
	)

	return huh.NewForm(huh.NewGroup(fields...))
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title is required")
	}
	if len(s) > dealTitleMaxLength {
		return fmt.Errorf("title must be at most %d characters", dealTitleMaxLength)
	}
	return nil
}

func validateAmount(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v < 0 {
		return fmt.Errorf("value cannot be negative")
	}
	return nil
}

func validatePercent(s string) error {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v < 0 || v > 100 {
		return fmt.Errorf("probability must be between 0 and 100")
	}
	return nil
}
