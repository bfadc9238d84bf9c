package models

import "time"

// EarningsBalance holds an author's withdrawable balance in base units. The
// row is created implicitly on the first credit; the balance can never go
// negative (uint64 plus conditional updates in the repository). A withdrawal
// zeroes it atomically.
type EarningsBalance struct {
	Author    string    `gorm:"primaryKey;size:64" json:"author"`
	Balance   uint64    `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the EarningsBalance model.
func (EarningsBalance) TableName() string {
	return "earnings_balances"
}
