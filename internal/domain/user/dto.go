package user

type CreateUserInput struct {
	Username string  `json:"username" form:"username" binding:"required,min=3,max=50" example:"johndoe"`
	Password string  `json:"password" form:"password" binding:"required,min=6" example:"password123"`
	Email    *string `json:"email" form:"email" binding:"omitempty,email" example:"user@example.com"`
	FullName *string `json:"full_name" form:"full_name" example:"John Doe"`
}

type LoginInput struct {
	Username string `json:"username" form:"username" binding:"required" example:"johndoe"`
	Password string `json:"password" form:"password" binding:"required" example:"password123"`
}

type UpdateUserInput struct {
	OldPassword *string `json:"old_password" form:"old_password" example:"oldPass123"`
	Password    *string `json:"password" form:"password" binding:"omitempty,min=6" example:"newPass123"`
	Email       *string `json:"email" form:"email" binding:"omitempty,email" example:"user@example.com"`
	FullName    *string `json:"full_name" form:"full_name" example:"John Doe"`
}

type UpdateRoleInput struct {
	Role string `json:"role" binding:"required,oneof=admin manager engineer requester" example:"engineer"`
}
