package models

import "fmt"

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleReceptionist Role = "receptionist"
	RoleTutor        Role = "tutor"
	RoleStudent      Role = "student"
)

// RolePriority is the fixed order in which role tables are scanned during
// authentication: the first match wins.
var RolePriority = []Role{RoleAdmin, RoleReceptionist, RoleTutor, RoleStudent}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleReceptionist, RoleTutor, RoleStudent:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// UserAccount is one row of a role table. All four roles share the layout;
// Specialization is populated for tutors only.
type UserAccount struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Role           Role   `json:"role"`
	FullName       string `json:"full_name"`
	Specialization string `json:"specialization,omitempty"`
}
