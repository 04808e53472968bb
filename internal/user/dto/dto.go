package dto

import "github.com/fekuna/omnipos-poultry-service/internal/model"

type UserFilters struct {
	Role        model.Role
	SearchQuery string // name or email
	Page        int
	PageSize    int
}

type CreateUserInput struct {
	Name     string
	Role     model.Role
	Email    string
	Password string
}

// UpdateUserInput keeps the stored password when Password is empty.
type UpdateUserInput struct {
	ID       string
	Name     string
	Role     model.Role
	Email    string
	Password string
}
