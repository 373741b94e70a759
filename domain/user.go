package domain

// User is an account that owns boards. The password hash never leaves the
// process; it is excluded from every serialized form.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
