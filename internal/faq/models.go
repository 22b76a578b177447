// internal/faq/models.go
package faq

import "time"

// FAQ categories shown as filter chips in the help screen.
const (
	CategoryAll       = "All Questions"
	CategoryStudents  = "For Students"
	CategoryLandlords = "For Landlords"
	CategoryPayments  = "Payments"
	CategorySafety    = "Safety & Security"
)

// FAQ is one help centre entry.
type FAQ struct {
	ID        int64     `json:"id" db:"id"`
	Category  string    `json:"category" db:"category"`
	Question  string    `json:"question" db:"question"`
	Answer    string    `json:"answer" db:"answer"`
	SortOrder int       `json:"sortOrder" db:"sort_order"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Categories returns the filter chips in display order.
func Categories() []string {
	return []string{
		CategoryAll,
		CategoryStudents,
		CategoryLandlords,
		CategoryPayments,
		CategorySafety,
	}
}
