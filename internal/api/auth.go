package api

import "github.com/palaver-dev/palaver/internal/domain"

// Request DTOs

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=20"`
	Password string `json:"password" validate:"required,min=5"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// UserResponse is the outward shape of a user record. The password hash
// never leaves the service.
type UserResponse struct {
	Id       domain.UserId   `json:"id"`
	Username domain.Username `json:"username"`
	Admin    bool            `json:"is_admin"`
}

func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{Id: user.Id, Username: user.Username, Admin: user.Admin}
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

func NewUsersResponse(users []domain.User) UsersResponse {
	out := UsersResponse{Users: make([]UserResponse, 0, len(users))}
	for _, user := range users {
		out.Users = append(out.Users, NewUserResponse(user))
	}
	return out
}
