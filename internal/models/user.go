package models

// User is a stored credential record. The bcrypt hash is persisted under the
// "password" key to stay compatible with existing users.json files.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}
