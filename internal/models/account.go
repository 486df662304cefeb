package models

import "github.com/oyilmaz/firsat/internal/types"

// AccountType mirrors the backend's account_type enumeration
type AccountType string

const (
	AccountCustomer AccountType = "Customer"
	AccountSupplier AccountType = "Supplier"
	AccountBoth     AccountType = "Both"
)

// Account represents a customer or supplier entity.
// The board never mutates accounts; they are display-only references.
type Account struct {
	ID                types.AccountID
	Title             string
	AccountType       AccountType
	TaxID             string
	TaxOffice         string
	Phone             string
	Email             string
	ReceivableBalance float64
	PayableBalance    float64
}
