package userservice

// Role роли пользователей в UserService
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User модель пользователя из UserService
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// IsAdmin returns true if the user has the administrator role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
