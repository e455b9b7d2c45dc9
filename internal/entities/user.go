package entities

import "slices"

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User represents an API account. PasswordHash only ever holds the output of
// the credential hasher.
type User struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email" validate:"required,email,max=180"`
	PasswordHash string   `json:"-"` // Don't expose password hash in JSON
	Roles        []string `json:"roles"`
}

// EffectiveRoles returns the stored roles plus ROLE_USER, which every account holds.
func (u *User) EffectiveRoles() []string {
	roles := slices.Clone(u.Roles)
	if !slices.Contains(roles, RoleUser) {
		roles = append(roles, RoleUser)
	}
	return roles
}

func (u *User) Field(name string) any {
	switch name {
	case "id":
		return u.ID
	case "email":
		return u.Email
	case "roles":
		return u.EffectiveRoles()
	}
	return nil
}
