package entity

import "time"

// Role is the authorization role, persisted as a numeric flag on the user row.
// The store is authoritative for this value; no API operation promotes a user.
type Role int

const (
	RoleUser  Role = 0
	RoleAdmin Role = 1
)

func (r Role) IsAdmin() bool { return r == RoleAdmin }

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "user"
}

// User is the aggregate root for the account domain.
// Password holds the bcrypt digest, never the plaintext. Answer is the
// security answer consumed only by the password reset flow.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Phone     string
	Address   string
	Answer    string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the sanitized projection exposed to clients. The credential
// digest and the recovery answer never leave the server through it.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
