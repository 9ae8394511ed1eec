package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// requiredID rejects the zero ObjectID. ozzo's Required rule treats a
// fixed-size byte array as non-empty, so object ids need their own rule.
func requiredID(value interface{}) error {
	id, _ := value.(primitive.ObjectID)
	if id.IsZero() {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
}
