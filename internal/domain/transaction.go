package domain

import "time"

// Transaction types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Divisions (cost-center tags)
const (
	DivisionOffice   = "Office"
	DivisionPersonal = "Personal"
)

// EditWindow is how long after entry a transaction stays editable.
const EditWindow = 12 * time.Hour

// Transaction Model
//
// Account is a free-text label, not a foreign key into accounts; transactions
// never touch an account balance. Date is the business date and may be
// back-dated freely; CreatedAt anchors the edit window.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"not null;index:idx_transactions_date_type,priority:2" json:"type"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `gorm:"not null" json:"description"`
	Category    string    `gorm:"not null;index:idx_transactions_category_division,priority:1" json:"category"`
	Division    string    `gorm:"not null;index:idx_transactions_category_division,priority:2" json:"division"`
	Date        time.Time `gorm:"not null;index:idx_transactions_date_type,priority:1" json:"date"`
	Account     string    `gorm:"default:'Main Account'" json:"account"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HoursSinceEntry returns how many hours ago the record was entered.
func (t *Transaction) HoursSinceEntry(now time.Time) float64 {
	return now.Sub(t.CreatedAt).Hours()
}

// MutableAt reports whether the transaction may still be updated or deleted.
// The window is anchored on entry time, not the business date, so back-dated
// entries stay editable right after they are recorded. The boundary is
// inclusive: exactly EditWindow after entry is still editable.
func (t *Transaction) MutableAt(now time.Time) bool {
	return now.Sub(t.CreatedAt) <= EditWindow
}
