package models

import "time"

// Lead is a callback request submitted from the public contact form.
type Lead struct {
	Name       string    `json:"name" validate:"required,max=200"`
	Phone      string    `json:"phone" validate:"required,max=50"`
	Message    string    `json:"message,omitempty" validate:"max=4000"`
	ReceivedAt time.Time `json:"-"`
}
