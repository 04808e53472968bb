package model

type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleStaff   Role = "Staff"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

type User struct {
	BaseModel
	Name         string `db:"name" json:"name"`
	Role         Role   `db:"role" json:"role"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password" json:"-"`
}
