package model

import (
	"time"
)

// Wallet holds a user's prepaid balance in the same integer units as
// flight prices.
type Wallet struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id" validate:"required,min=1,max=128"`
	Balance   int64     `json:"balance" bson:"balance" validate:"min=0"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// WalletTopUp is the request body for credit operations.
type WalletTopUp struct {
	Amount int64 `json:"amount" validate:"required,min=1"`
}
