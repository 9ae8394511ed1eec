package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Headquarter is a client site. Its clientId reference is the single
// structural parent: the root of the ownership chain.
type Headquarter struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID  primitive.ObjectID `bson:"clientId" json:"clientId"`
	Name      string             `bson:"name" json:"name"`
	Address   string             `bson:"address" json:"address"`
	City      string             `bson:"city" json:"city"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Populated on read when relation expansion is requested
	Client *User `bson:"client,omitempty" json:"client,omitempty"`
}

func (h *Headquarter) Validate() error {
	return validation.ValidateStruct(h,
		validation.Field(&h.ClientID, validation.By(requiredID)),
		validation.Field(&h.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&h.Address, validation.Required),
	)
}

// Stamp sets the bookkeeping timestamps before a write.
func (h *Headquarter) Stamp(now time.Time) {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	h.UpdatedAt = now
}
