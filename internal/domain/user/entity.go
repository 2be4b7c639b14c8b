package user

// User is a portal account as stored in the "users" collection. Employee is
// the display name late check-in records are keyed by.
type User struct {
	ID           string `json:"id"`
	Employee     string `json:"employee"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	IsAdmin      bool   `json:"isAdmin"`
}
