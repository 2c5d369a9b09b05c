package models

import "time"

type BookRanking struct {
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	LoanCount int    `json:"loan_count"`
}

type UserRanking struct {
	UserID    string   `json:"user_id"`
	Name      string   `json:"name"`
	Type      UserType `json:"type"`
	LoanCount int      `json:"loan_count"`
}

type ActiveLoanRow struct {
	LoanID        string    `json:"loan_id"`
	UserName      string    `json:"user_name"`
	BookTitle     string    `json:"book_title"`
	LoanedAt      time.Time `json:"loaned_at"`
	DueAt         time.Time `json:"due_at"`
	DaysRemaining int       `json:"days_remaining"`
	Overdue       bool      `json:"overdue"`
}

type CollectionSummary struct {
	TotalTitles          int       `json:"total_titles"`
	TotalCopiesAvailable int       `json:"total_copies_available"`
	UnavailableTitles    int       `json:"unavailable_titles"`
	GeneratedAt          time.Time `json:"generated_at"`
}

type UserSummary struct {
	TotalUsers   int       `json:"total_users"`
	ActiveUsers  int       `json:"active_users"`
	BlockedUsers int       `json:"blocked_users"`
	GeneratedAt  time.Time `json:"generated_at"`
}
