package domain

import "time"

// Transfer Model
//
// FromAccount and ToAccount are account names, not foreign keys. They are
// checked for existence when the transfer is made but renaming an account
// afterwards does not rewrite historical transfers.
type Transfer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FromAccount string    `gorm:"not null" json:"fromAccount"`
	ToAccount   string    `gorm:"not null" json:"toAccount"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `gorm:"not null" json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}
