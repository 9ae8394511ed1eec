package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is a unit of work logged against a service request.
type Activity struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ServiceRequestID primitive.ObjectID `bson:"serviceRequestId" json:"serviceRequestId"`
	Description      string             `bson:"description" json:"description"`
	Hours            float64            `bson:"hours,omitempty" json:"hours,omitempty"`
	PerformedAt      time.Time          `bson:"performedAt" json:"performedAt"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`

	ServiceRequest *ServiceRequest `bson:"serviceRequest,omitempty" json:"serviceRequest,omitempty"`
}

func (a *Activity) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.ServiceRequestID, validation.By(requiredID)),
		validation.Field(&a.Description, validation.Required),
		validation.Field(&a.Hours, validation.Min(0.0)),
	)
}

// Stamp sets the bookkeeping timestamps before a write.
func (a *Activity) Stamp(now time.Time) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
}
