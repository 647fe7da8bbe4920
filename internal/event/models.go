package event

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	EventTitle  string             `bson:"eventTitle" json:"eventTitle"`
	TypeOfEvent string             `bson:"typeOfEvent,omitempty" json:"typeOfEvent,omitempty"`
	DateOfEvent string             `bson:"dateOfEvent,omitempty" json:"dateOfEvent,omitempty"`
	MainGuest   string             `bson:"mainGuest,omitempty" json:"mainGuest,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Photo       []string           `bson:"photo" json:"photo"`
	Documents   []string           `bson:"documents" json:"documents"`
	CreatedBy   primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	HostedBy    primitive.ObjectID `bson:"hostedBy,omitempty" json:"hostedBy,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Duration    string             `bson:"duration,omitempty" json:"duration,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type CreateEventRequest struct {
	EventTitle  string `json:"eventTitle" form:"eventTitle"`
	TypeOfEvent string `json:"typeOfEvent" form:"typeOfEvent"`
	DateOfEvent string `json:"dateOfEvent" form:"dateOfEvent"`
	MainGuest   string `json:"mainGuest" form:"mainGuest"`
	Location    string `json:"location" form:"location"`
	Description string `json:"description" form:"description"`
	Duration    string `json:"duration" form:"duration"`
}

type UpdateEventRequest struct {
	EventTitle  *string `json:"eventTitle"`
	TypeOfEvent *string `json:"typeOfEvent"`
	DateOfEvent *string `json:"dateOfEvent"`
	MainGuest   *string `json:"mainGuest"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Duration    *string `json:"duration"`
}
