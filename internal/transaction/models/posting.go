// Package models defines the ledger posting shared by the use cases and the
// transactions store.
package models

import (
	"time"

	"kantor/pkg/domain"
	"kantor/pkg/money"
)

// Posting is one signed monetary movement. The amount's sign encodes
// direction: negative debits the account, positive credits it. Postings are
// immutable once persisted; (TransactionID, Value.Currency) is the store's
// uniqueness key, which both pairs the two legs of an exchange and rejects a
// replayed transaction id.
type Posting struct {
	TransactionID domain.TransactionID
	AccountID     domain.AccountID
	Value         money.Money
	CreatedAt     time.Time
}
