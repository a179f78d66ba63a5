package models

// Role is persisted as a number: 0 for administrators, 1 for clients.
type Role int

const (
	RoleAdmin  Role = 0
	RoleClient Role = 1
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleClient:
		return "client"
	default:
		return "unknown"
	}
}

// User is stored as a whole record inside the "users" slot. Password holds
// a bcrypt hash, never the plain value.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role"`
}

// UserView is what leaves the API: the user without the password hash.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  Role   `json:"role"`
}

func (u User) View() UserView {
	return UserView{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Role:  u.Role,
	}
}

// Todo belongs to a user through UserID. CreatedAt is milliseconds since epoch.
type Todo struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"`
}

type RegisterRequest struct {
	Name            string `json:"name" validate:"required,todoname"`
	Email           string `json:"email" validate:"required,todoemail"`
	Phone           string `json:"phone" validate:"required,todophone"`
	Password        string `json:"password" validate:"required,todopassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	Role            *Role  `json:"role" validate:"omitempty,min=0,max=1"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,todoemail"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name               string `json:"name" validate:"required,todoname"`
	Email              string `json:"email" validate:"required,todoemail"`
	Phone              string `json:"phone" validate:"required,todophone"`
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// ChangesPassword reports whether any of the password fields was filled in.
func (r UpdateProfileRequest) ChangesPassword() bool {
	return r.CurrentPassword != "" || r.NewPassword != "" || r.ConfirmNewPassword != ""
}

type CreateTodoRequest struct {
	Title string `json:"title"`
}

type AdminStats struct {
	TotalClients   int `json:"totalClients"`
	TotalTodos     int `json:"totalTodos"`
	CompletedTodos int `json:"completedTodos"`
}

type ClientStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}
