package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jerry-enebeli/kvc/keypath"
)

var (
	accountSchema     = newAccountSchema()
	transactionSchema = newTransactionSchema()
	personSchema      = newPersonSchema()
)

func newAccountSchema() *keypath.Schema {
	s := keypath.NewSchema("Account")
	keypath.Attribute(s, "id", func(a *Account) string { return a.AccountID }, nil)
	keypath.Attribute(s, "balance",
		func(a *Account) decimal.Decimal { return a.Balance },
		func(a *Account, v decimal.Decimal) { a.Balance = v })
	keypath.ToOne(s, "owner",
		func(a *Account) *Person { return a.Owner },
		func(a *Account, v *Person) { a.Owner = v })
	keypath.ToMany(s, "transactions",
		func(a *Account) []*Transaction { return a.Transactions },
		func(a *Account, v []*Transaction) { a.Transactions = v })
	keypath.Attribute(s, "created_at", func(a *Account) time.Time { return a.CreatedAt }, nil)
	return s
}

func newTransactionSchema() *keypath.Schema {
	s := keypath.NewSchema("Transaction")
	keypath.Attribute(s, "id", func(t *Transaction) string { return t.TransactionID }, nil)
	keypath.Attribute(s, "payee",
		func(t *Transaction) string { return t.Payee },
		func(t *Transaction, v string) { t.Payee = v })
	keypath.Attribute(s, "amount",
		func(t *Transaction) decimal.Decimal { return t.Amount },
		func(t *Transaction, v decimal.Decimal) { t.Amount = v })
	keypath.Attribute(s, "date",
		func(t *Transaction) time.Time { return t.Date },
		func(t *Transaction, v time.Time) { t.Date = v })
	return s
}

func newPersonSchema() *keypath.Schema {
	s := keypath.NewSchema("Person")
	keypath.Attribute(s, "id", func(p *Person) string { return p.PersonID }, nil)
	keypath.Attribute(s, "first_name",
		func(p *Person) string { return p.FirstName },
		func(p *Person, v string) { p.FirstName = v })
	keypath.Attribute(s, "last_name",
		func(p *Person) string { return p.LastName },
		func(p *Person, v string) { p.LastName = v })
	keypath.Attribute(s, "email",
		func(p *Person) string { return p.EmailAddress },
		func(p *Person, v string) { p.EmailAddress = v })
	keypath.Attribute(s, "full_name", (*Person).FullName, nil)
	return s
}

func (account *Account) KeyPathSchema() *keypath.Schema { return accountSchema }

func (transaction *Transaction) KeyPathSchema() *keypath.Schema { return transactionSchema }

func (p *Person) KeyPathSchema() *keypath.Schema { return personSchema }
