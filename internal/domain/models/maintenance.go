package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MaintenancePreventive = "preventive"
	MaintenanceCorrective = "corrective"
)

// Maintenance is a completed maintenance intervention resolving a
// service request.
type Maintenance struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ServiceRequestID primitive.ObjectID `bson:"serviceRequestId" json:"serviceRequestId"`
	Kind             string             `bson:"kind" json:"kind"`
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`
	PerformedAt      time.Time          `bson:"performedAt" json:"performedAt"`
	NextDueAt        time.Time          `bson:"nextDueAt,omitempty" json:"nextDueAt,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`

	ServiceRequest *ServiceRequest `bson:"serviceRequest,omitempty" json:"serviceRequest,omitempty"`
}

func (m *Maintenance) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.ServiceRequestID, validation.By(requiredID)),
		validation.Field(&m.Kind, validation.Required, validation.In(
			MaintenancePreventive,
			MaintenanceCorrective,
		)),
	)
}

// Stamp sets the bookkeeping timestamps before a write.
func (m *Maintenance) Stamp(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}
