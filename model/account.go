package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account owns its transactions in the order they were appended. Owner is a
// reference to a Person whose lifetime is managed elsewhere.
type Account struct {
	AccountID    string          `json:"account_id"`
	Balance      decimal.Decimal `json:"balance"`
	Owner        *Person         `json:"owner,omitempty"`
	Transactions []*Transaction  `json:"transactions"`
	CreatedAt    time.Time       `json:"created_at"`
}

func NewAccount(owner *Person, balance decimal.Decimal) *Account {
	return &Account{
		AccountID:    GenerateUUIDWithSuffix("acc"),
		Balance:      balance,
		Owner:        owner,
		Transactions: make([]*Transaction, 0),
		CreatedAt:    time.Now(),
	}
}

// AddTransaction appends txn to the account's history. Duplicates are kept.
func (account *Account) AddTransaction(txn *Transaction) {
	account.Transactions = append(account.Transactions, txn)
}
