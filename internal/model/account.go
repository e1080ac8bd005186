package model

import "golang.org/x/crypto/bcrypt"

// Account is the identity service's view of an operator. It is never stored
// locally; the password hash is only used to verify logins.
type Account struct {
	Email        string `json:"email"`
	PasswordHash string `json:"senha"`
	Role         Role   `json:"role"`
}

// CheckPassword verifies if the provided password matches the stored hash
func (a *Account) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}

// AccountResponse is used for API responses (without sensitive data)
type AccountResponse struct {
	Email      string   `json:"email"`
	Role       Role     `json:"role"`
	Privileges []string `json:"privileges"`
}

// ToResponse converts Account to AccountResponse
func (a *Account) ToResponse() AccountResponse {
	return AccountResponse{
		Email:      a.Email,
		Role:       a.Role,
		Privileges: a.Role.Privileges(),
	}
}
