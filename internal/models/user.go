package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is the authorization label attached to a user.
type Role string

// Role constants. A user document with no role field decodes to RoleStandard.
const (
	RoleStandard Role = ""
	RoleAdmin    Role = "admin"
)

// IsAdmin reports whether the role grants admin access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User represents a user document in the users collection
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email string             `bson:"email" json:"email"`
	Role  Role               `bson:"role,omitempty" json:"role,omitempty"`
}
