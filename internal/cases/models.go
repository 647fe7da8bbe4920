package cases

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Case is the central workflow entity. A case can sit on both responder
// tracks at once: assignedToRIB and assignedToHospital are independent sets
// of user references, and the acceptance flag of one track never touches the
// other.
type Case struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	CaseTitle          string               `bson:"caseTitle" json:"caseTitle"`
	TypeOfCase         string               `bson:"typeOfCase" json:"typeOfCase"`
	Status             string               `bson:"status,omitempty" json:"status,omitempty"`
	DateOfIncident     string               `bson:"dateOfIncident,omitempty" json:"dateOfIncident,omitempty"`
	Location           string               `bson:"location,omitempty" json:"location,omitempty"`
	Photo              []string             `bson:"photo" json:"photo"`
	Documents          []string             `bson:"documents" json:"documents"`
	CreatedBy          primitive.ObjectID   `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedBy          primitive.ObjectID   `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	IsRIBAccepted      bool                 `bson:"isRIBAccepted" json:"isRIBAccepted"`
	IsHospitalAccepted bool                 `bson:"isHospitalAccepted" json:"isHospitalAccepted"`
	Description        string               `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt          time.Time            `bson:"createdAt" json:"createdAt"`
	Progress           string               `bson:"progress,omitempty" json:"progress,omitempty"`
	AssignedToRIB      []primitive.ObjectID `bson:"assignedToRIB" json:"assignedToRIB"`
	AssignedToHospital []primitive.ObjectID `bson:"assignedToHospital" json:"assignedToHospital"`
	ResponseText       string               `bson:"responseText,omitempty" json:"responseText,omitempty"`
	VictimName         string               `bson:"victim_name,omitempty" json:"victim_name,omitempty"`
	VictimEmail        string               `bson:"victim_email,omitempty" json:"victim_email,omitempty"`
	VictimPhone        string               `bson:"victim_phone,omitempty" json:"victim_phone,omitempty"`
	NationalID         string               `bson:"national_id,omitempty" json:"national_id,omitempty"`
	Gender             string               `bson:"gender,omitempty" json:"gender,omitempty"`
	RiskType           string               `bson:"risk_type,omitempty" json:"risk_type,omitempty"`
	CurrentRiskLevel   string               `bson:"current_risk_level,omitempty" json:"current_risk_level,omitempty"`
	Interventions      string               `bson:"interventions,omitempty" json:"interventions,omitempty"`
	IsEmergency        bool                 `bson:"isEmergency" json:"isEmergency"`
}

// CreateCaseRequest carries the reporter-supplied fields. Photo and document
// URLs are filled in server-side after upload.
type CreateCaseRequest struct {
	CaseTitle        string `json:"caseTitle" form:"caseTitle"`
	TypeOfCase       string `json:"typeOfCase" form:"typeOfCase"`
	Status           string `json:"status" form:"status"`
	DateOfIncident   string `json:"dateOfIncident" form:"dateOfIncident"`
	Location         string `json:"location" form:"location"`
	Description      string `json:"description" form:"description"`
	VictimName       string `json:"victim_name" form:"victim_name"`
	VictimEmail      string `json:"victim_email" form:"victim_email"`
	VictimPhone      string `json:"victim_phone" form:"victim_phone"`
	NationalID       string `json:"national_id" form:"national_id"`
	Gender           string `json:"gender" form:"gender"`
	RiskType         string `json:"risk_type" form:"risk_type"`
	CurrentRiskLevel string `json:"current_risk_level" form:"current_risk_level"`
	Interventions    string `json:"interventions" form:"interventions"`
}

// UpdateCaseRequest is a partial update; nil pointers are left untouched.
type UpdateCaseRequest struct {
	CaseTitle        *string `json:"caseTitle"`
	TypeOfCase       *string `json:"typeOfCase"`
	Status           *string `json:"status"`
	DateOfIncident   *string `json:"dateOfIncident"`
	Location         *string `json:"location"`
	Description      *string `json:"description"`
	VictimName       *string `json:"victim_name"`
	VictimEmail      *string `json:"victim_email"`
	VictimPhone      *string `json:"victim_phone"`
	NationalID       *string `json:"national_id"`
	Gender           *string `json:"gender"`
	RiskType         *string `json:"risk_type"`
	CurrentRiskLevel *string `json:"current_risk_level"`
	Interventions    *string `json:"interventions"`
	Progress         *string `json:"progress"`
	ResponseText     *string `json:"responseText"`
}

type AssignRIBRequest struct {
	RIBID string `json:"ribId"`
}

type AssignHospitalRequest struct {
	HospitalID string `json:"hospitalId"`
}

type RIBDecisionRequest struct {
	IsRIBAccepted bool `json:"isRIBAccepted"`
}

type HospitalDecisionRequest struct {
	IsHospitalAccepted bool `json:"isHospitalAccepted"`
}

type ProgressRequest struct {
	Progress         string `json:"progress"`
	ResponseText     string `json:"responseText"`
	CurrentRiskLevel string `json:"current_risk_level"`
	Interventions    string `json:"interventions"`
}

type EmergencyRequest struct {
	IsEmergency bool `json:"isEmergency"`
}
