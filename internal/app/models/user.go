package models

// User is an account that can authenticate against the API.
type User struct {
	ID        int64   `json:"id" db:"id"`
	Username  string  `json:"username" db:"username"`
	Password  string  `json:"-" db:"password"`
	FirstName string  `json:"first_name" db:"first_name"`
	LastName  string  `json:"last_name" db:"last_name"`
	Email     *string `json:"email" db:"email"`
	IsActive  bool    `json:"is_active" db:"is_active"`
}
