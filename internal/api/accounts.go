package api

import (
	"context"

	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/types"
)

// accountPayload is the wire shape of one account
type accountPayload struct {
	ID                int     `json:"id"`
	AccountType       string  `json:"account_type"`
	Title             string  `json:"title"`
	TaxID             *string `json:"tax_id"`
	TaxOffice         *string `json:"tax_office"`
	Phone             *string `json:"phone"`
	Email             *string `json:"email"`
	ReceivableBalance float64 `json:"receivable_balance"`
	PayableBalance    float64 `json:"payable_balance"`
}

func (p *accountPayload) toModel() *models.Account {
	account := &models.Account{
		ID:                types.AccountID(p.ID),
		Title:             p.Title,
		AccountType:       models.AccountType(p.AccountType),
		ReceivableBalance: p.ReceivableBalance,
		PayableBalance:    p.PayableBalance,
	}
	if p.TaxID != nil {
		account.TaxID = *p.TaxID
	}
	if p.TaxOffice != nil {
		account.TaxOffice = *p.TaxOffice
	}
	if p.Phone != nil {
		account.Phone = *p.Phone
	}
	if p.Email != nil {
		account.Email = *p.Email
	}
	return account
}

// ListAccounts fetches all accounts visible to the tenant
func (c *Client) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	var payloads []*accountPayload
	if err := c.do(ctx, "GET", "/accounts", nil, &payloads); err != nil {
		return nil, err
	}

	accounts := make([]*models.Account, 0, len(payloads))
	for _, p := range payloads {
		accounts = append(accounts, p.toModel())
	}
	return accounts, nil
}
