package model

// User is a registered account. Rows are immutable after registration;
// no edit or delete route exists.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Gender       string `json:"gender"`
	PasswordHash string `json:"-"`
}
