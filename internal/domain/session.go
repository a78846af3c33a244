package domain

import "time"

// Session is the per-user state held for the lifetime of the server process.
// It is never persisted: a restart loses carts and saved contact data.
type Session struct {
	UserID      int64
	DisplayName string
	Cart        []CartLine
	Contact     *ContactProfile
	CreatedAt   time.Time
}

// ContactProfile is the checkout form data saved into the session. Orders
// receive a copy, so later edits never mutate an already submitted order.
type ContactProfile struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Comment  string `json:"comment,omitempty"`
}
