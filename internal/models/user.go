package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleEmployee    Role = "ROLE_EMPLOYEE"
	RoleApprover    Role = "ROLE_APPROVER"
	RoleMaintenance Role = "ROLE_MAINTENANCE"
	RoleAdmin       Role = "ROLE_ADMIN"
)

// CanApprove reports whether the role may approve or reject bookings.
func (r Role) CanApprove() bool {
	return r == RoleApprover || r == RoleAdmin
}

type User struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email      string             `json:"email" bson:"email" validate:"required,email"`
	Password   string             `json:"-" bson:"password"`
	FirstName  string             `json:"first_name" bson:"first_name" validate:"required,min=2,max=50"`
	LastName   string             `json:"last_name" bson:"last_name" validate:"required,min=2,max=50"`
	Department string             `json:"department,omitempty" bson:"department,omitempty"`
	CostCenter string             `json:"cost_center,omitempty" bson:"cost_center,omitempty"`
	Role       Role               `json:"role" bson:"role"`
	Enabled    bool               `json:"enabled" bson:"enabled"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}
