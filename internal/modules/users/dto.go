package users

type ListUsersFilter struct {
	Role     string
	IsActive *bool
	Search   string
	Limit    int
	Offset   int
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
}
