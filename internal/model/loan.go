package model

// Loan is a borrow-history record. Book is a snapshot taken when the loan
// was recorded. ReturnDate is set only when Status is returned.
type Loan struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	BookID     string `json:"book_id"`
	Book       Book   `json:"book"`
	BorrowDate string `json:"borrow_date"`
	ReturnDate string `json:"return_date,omitempty"`
	DueDate    string `json:"due_date"`
	Status     string `json:"status"`
}

// Loan statuses.
const (
	LoanBorrowed = "borrowed"
	LoanReturned = "returned"
	LoanOverdue  = "overdue"
)
