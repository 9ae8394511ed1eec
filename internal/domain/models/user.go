package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of caller roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCompany  Role = "company"
	RoleEngineer Role = "engineer"
	RoleClient   Role = "client"
)

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCompany, RoleEngineer, RoleClient:
		return true
	}
	return false
}

// User is an account document. Accounts with the client role are root
// owners: every ownership chain terminates at a client account id.
// Company and engineer accounts carry a permissions list of client
// account ids, a delegated grant distinct from the structural chain.
type User struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Email       string               `bson:"email" json:"email"`
	Role        Role                 `bson:"role" json:"role"`
	Permissions []primitive.ObjectID `bson:"permissions,omitempty" json:"permissions,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the account payload before create/update.
func (u *User) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&u.Email, validation.Required, is.EmailFormat),
		validation.Field(&u.Role, validation.Required, validation.By(validateRole)),
	)
}

func validateRole(value interface{}) error {
	r, _ := value.(Role)
	if !r.Valid() {
		return validation.NewError("validation_role", "must be one of admin, company, engineer, client")
	}
	return nil
}

// Stamp sets the bookkeeping timestamps before a write.
func (u *User) Stamp(now time.Time) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

// PermissionStrings returns the permission grant as hex strings.
func (u *User) PermissionStrings() []string {
	out := make([]string, 0, len(u.Permissions))
	for _, id := range u.Permissions {
		out = append(out, id.Hex())
	}
	return out
}
