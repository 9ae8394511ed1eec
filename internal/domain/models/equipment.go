package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Equipment statuses follow the record lifecycle: acquired, in service,
// under repair, retired.
const (
	EquipmentStatusAcquired    = "acquired"
	EquipmentStatusInService   = "in_service"
	EquipmentStatusUnderRepair = "under_repair"
	EquipmentStatusRetired     = "retired"
)

// Equipment is a medical-equipment record located in an office.
type Equipment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OfficeID   primitive.ObjectID `bson:"officeId" json:"officeId"`
	Name       string             `bson:"name" json:"name"`
	Brand      string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Model      string             `bson:"model,omitempty" json:"model,omitempty"`
	Serial     string             `bson:"serial" json:"serial"`
	Status     string             `bson:"status" json:"status"`
	AcquiredAt time.Time          `bson:"acquiredAt,omitempty" json:"acquiredAt,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`

	Office *Office `bson:"office,omitempty" json:"office,omitempty"`
}

func (e *Equipment) Validate() error {
	return validation.ValidateStruct(e,
		validation.Field(&e.OfficeID, validation.By(requiredID)),
		validation.Field(&e.Name, validation.Required, validation.Length(1, 160)),
		validation.Field(&e.Serial, validation.Required),
		validation.Field(&e.Status, validation.Required, validation.In(
			EquipmentStatusAcquired,
			EquipmentStatusInService,
			EquipmentStatusUnderRepair,
			EquipmentStatusRetired,
		)),
	)
}

// Stamp sets the bookkeeping timestamps before a write.
func (e *Equipment) Stamp(now time.Time) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
}
