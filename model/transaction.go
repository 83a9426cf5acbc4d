package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	TransactionID string          `json:"id"`
	Payee         string          `json:"payee"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
}

func NewTransaction(payee string, amount decimal.Decimal, date time.Time) *Transaction {
	return &Transaction{
		TransactionID: GenerateUUIDWithSuffix("txn"),
		Payee:         payee,
		Amount:        amount,
		Date:          date,
	}
}

func (transaction *Transaction) ToJSON() ([]byte, error) {
	return json.Marshal(transaction)
}
