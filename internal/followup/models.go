package followup

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FollowUp tracks victim aftercare: who is being seen, by which doctor, and
// what happens next. No uploads, no notifications.
type FollowUp struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	VictimName      string             `bson:"victim_name,omitempty" json:"victim_name,omitempty"`
	Gender          string             `bson:"gender,omitempty" json:"gender,omitempty"`
	DoctorName      string             `bson:"doctor_name,omitempty" json:"doctor_name,omitempty"`
	NeededAid       string             `bson:"needed_aid,omitempty" json:"needed_aid,omitempty"`
	NextAppointment *time.Time         `bson:"next_appointment,omitempty" json:"next_appointment,omitempty"`
	Action          string             `bson:"action,omitempty" json:"action,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type FollowUpRequest struct {
	VictimName      string     `json:"victim_name"`
	Gender          string     `json:"gender"`
	DoctorName      string     `json:"doctor_name"`
	NeededAid       string     `json:"needed_aid"`
	NextAppointment *time.Time `json:"next_appointment"`
	Action          string     `json:"action"`
}
