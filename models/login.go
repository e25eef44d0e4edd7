package models

type Login struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

type ChangePassword struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type UpdateProfile struct {
	Name    *string `json:"name"`
	PhoneNo *string `json:"phoneNo"`
}
