package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the single role enum behind every authorization gate.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleUser     Role = "user"
	RoleAgent    Role = "agent"
	RoleRIB      Role = "RIB"
	RoleDoctor   Role = "doctor"
	RoleHospital Role = "hospital"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	Phone        string             `bson:"phone" json:"phone"`
	Location     string             `bson:"location" json:"location"`
	OTPHash      string             `bson:"otp,omitempty" json:"-"`
	OTPExpiresAt *time.Time         `bson:"otpExpiresAt,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// UserSummary is the public slice of a user returned by auth endpoints.
type UserSummary struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

func Summarize(u *User) UserSummary {
	return UserSummary{
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		Phone:    u.Phone,
		Location: u.Location,
	}
}
