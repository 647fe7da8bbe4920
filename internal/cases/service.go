package cases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gilberthappi/isange-pro-be/internal/auth"
	"github.com/gilberthappi/isange-pro-be/pkg/stats"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var ErrResponderNotFound = errors.New("responder not found")

// CaseStore is the slice of the repository the service needs.
type CaseStore interface {
	Create(ctx context.Context, c *Case) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Case, error)
	FindAll(ctx context.Context) ([]*Case, error)
	FindByCreator(ctx context.Context, userID primitive.ObjectID) ([]*Case, error)
	FindAssignedToRIB(ctx context.Context, userID primitive.ObjectID) ([]*Case, error)
	FindAssignedToHospital(ctx context.Context, userID primitive.ObjectID) ([]*Case, error)
	FindByRiskLevel(ctx context.Context, riskLevel string) ([]*Case, error)
	FindEmergencies(ctx context.Context) ([]*Case, error)
	SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Case, error)
	AssignRIB(ctx context.Context, caseID, userID primitive.ObjectID) (*Case, error)
	AssignHospital(ctx context.Context, caseID, userID primitive.ObjectID) (*Case, error)
	SetRIBDecision(ctx context.Context, id primitive.ObjectID, accepted bool) (*Case, error)
	SetHospitalDecision(ctx context.Context, id primitive.ObjectID, accepted bool) (*Case, error)
	SetProgress(ctx context.Context, id primitive.ObjectID, req ProgressRequest, updatedBy primitive.ObjectID) (*Case, error)
	SetEmergency(ctx context.Context, id primitive.ObjectID, isEmergency bool) (*Case, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Case, error)
	DeleteAll(ctx context.Context) (int64, error)
	MonthlyCounts(ctx context.Context, year int) (map[int]int, error)
}

// UserDirectory resolves user references during assignment.
type UserDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*auth.User, error)
}

// Notifier is the best-effort email fan-out attached to workflow
// transitions. Calls never return errors; failures are the notifier's
// problem to log.
type Notifier interface {
	NotifyRole(ctx context.Context, role auth.Role, subject, textBody, htmlBody string)
	NotifyAddress(ctx context.Context, to, subject, textBody, htmlBody string)
}

type CaseService struct {
	repo     CaseStore
	users    UserDirectory
	notifier Notifier
	log      *zap.SugaredLogger
}

func NewCaseService(repo *CaseRepository, users *auth.UserRepository, notifier Notifier, log *zap.SugaredLogger) *CaseService {
	return &CaseService{repo: repo, users: users, notifier: notifier, log: log}
}

// CreateCase records a new report and tells every admin about it. Upload
// URLs are already resolved by the handler; nil slices mean no attachments.
func (s *CaseService) CreateCase(ctx context.Context, req CreateCaseRequest, photos, documents []string, createdBy primitive.ObjectID) (*Case, error) {
	creator, err := s.users.FindByID(ctx, createdBy)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, auth.ErrUserNotFound
	}

	c := &Case{
		ID:                 primitive.NewObjectID(),
		CaseTitle:          req.CaseTitle,
		TypeOfCase:         req.TypeOfCase,
		Status:             req.Status,
		DateOfIncident:     req.DateOfIncident,
		Location:           req.Location,
		Photo:              photos,
		Documents:          documents,
		CreatedBy:          createdBy,
		Description:        req.Description,
		CreatedAt:          time.Now(),
		AssignedToRIB:      []primitive.ObjectID{},
		AssignedToHospital: []primitive.ObjectID{},
		VictimName:         req.VictimName,
		VictimEmail:        req.VictimEmail,
		VictimPhone:        req.VictimPhone,
		NationalID:         req.NationalID,
		Gender:             req.Gender,
		RiskType:           req.RiskType,
		CurrentRiskLevel:   req.CurrentRiskLevel,
		Interventions:      req.Interventions,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.notifier.NotifyRole(ctx, auth.RoleAdmin,
		fmt.Sprintf("New Case Created: %s", c.CaseTitle),
		fmt.Sprintf("A new case titled %q has been created. Please log in to review the details.", c.CaseTitle),
		caseCreatedHTML(c, creator.Name))
	return c, nil
}

// UpdateCase applies the supplied fields and notifies admins.
func (s *CaseService) UpdateCase(ctx context.Context, id primitive.ObjectID, req UpdateCaseRequest) (*Case, error) {
	fields := bson.M{}
	setIf(fields, "caseTitle", req.CaseTitle)
	setIf(fields, "typeOfCase", req.TypeOfCase)
	setIf(fields, "status", req.Status)
	setIf(fields, "dateOfIncident", req.DateOfIncident)
	setIf(fields, "location", req.Location)
	setIf(fields, "description", req.Description)
	setIf(fields, "victim_name", req.VictimName)
	setIf(fields, "victim_email", req.VictimEmail)
	setIf(fields, "victim_phone", req.VictimPhone)
	setIf(fields, "national_id", req.NationalID)
	setIf(fields, "gender", req.Gender)
	setIf(fields, "risk_type", req.RiskType)
	setIf(fields, "current_risk_level", req.CurrentRiskLevel)
	setIf(fields, "interventions", req.Interventions)
	setIf(fields, "progress", req.Progress)
	setIf(fields, "responseText", req.ResponseText)

	var updated *Case
	var err error
	if len(fields) == 0 {
		updated, err = s.repo.FindByID(ctx, id)
		if err == nil && updated == nil {
			err = ErrCaseNotFound
		}
	} else {
		updated, err = s.repo.SetFields(ctx, id, fields)
	}
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyRole(ctx, auth.RoleAdmin,
		fmt.Sprintf("Case Updated: %s", updated.CaseTitle),
		fmt.Sprintf("A case titled %q has been updated. Please log in to review the details.", updated.CaseTitle),
		"")
	return updated, nil
}

// AssignRIB puts a RIB responder on the case. The set is additive and
// idempotent; assigning the same responder twice is a no-op.
func (s *CaseService) AssignRIB(ctx context.Context, caseID, responderID primitive.ObjectID) (*Case, error) {
	responder, err := s.users.FindByID(ctx, responderID)
	if err != nil {
		return nil, err
	}
	if responder == nil {
		return nil, ErrResponderNotFound
	}

	updated, err := s.repo.AssignRIB(ctx, caseID, responderID)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyAddress(ctx, responder.Email, responder.Name,
		"You have been assigned a new case.", "")
	return updated, nil
}

func (s *CaseService) AssignHospital(ctx context.Context, caseID, responderID primitive.ObjectID) (*Case, error) {
	responder, err := s.users.FindByID(ctx, responderID)
	if err != nil {
		return nil, err
	}
	if responder == nil {
		return nil, ErrResponderNotFound
	}

	updated, err := s.repo.AssignHospital(ctx, caseID, responderID)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyAddress(ctx, responder.Email, responder.Name,
		"You have been assigned a new case.", "")
	return updated, nil
}

// RIBDecision sets the RIB acceptance flag. The hospital track is untouched;
// the two decisions are independent.
func (s *CaseService) RIBDecision(ctx context.Context, id primitive.ObjectID, accepted bool) (*Case, error) {
	updated, err := s.repo.SetRIBDecision(ctx, id, accepted)
	if err != nil {
		return nil, err
	}
	s.notifyDecision(ctx, updated, "RIB", accepted)
	return updated, nil
}

func (s *CaseService) HospitalDecision(ctx context.Context, id primitive.ObjectID, accepted bool) (*Case, error) {
	updated, err := s.repo.SetHospitalDecision(ctx, id, accepted)
	if err != nil {
		return nil, err
	}
	s.notifyDecision(ctx, updated, "Hospital", accepted)
	return updated, nil
}

func (s *CaseService) notifyDecision(ctx context.Context, c *Case, track string, accepted bool) {
	verdict := "rejected"
	if accepted {
		verdict = "accepted"
	}
	s.notifier.NotifyRole(ctx, auth.RoleAdmin,
		"Case Updates",
		fmt.Sprintf("Case %q: the assigned %s has %s the case.", c.CaseTitle, track, verdict),
		"")
}

// RIBProgress updates the progress fields in one atomic write and records
// who touched them. The route gate only checks the agent role, not that the
// caller is actually in assignedToRIB; kept as the original behaves.
// TODO: require assignment-set membership before accepting progress updates.
func (s *CaseService) RIBProgress(ctx context.Context, id primitive.ObjectID, req ProgressRequest, updatedBy primitive.ObjectID) (*Case, error) {
	updated, err := s.repo.SetProgress(ctx, id, req, updatedBy)
	if err != nil {
		return nil, err
	}
	s.notifyProgress(ctx, updated, auth.RoleRIB)
	return updated, nil
}

func (s *CaseService) HospitalProgress(ctx context.Context, id primitive.ObjectID, req ProgressRequest, updatedBy primitive.ObjectID) (*Case, error) {
	updated, err := s.repo.SetProgress(ctx, id, req, updatedBy)
	if err != nil {
		return nil, err
	}
	s.notifyProgress(ctx, updated, auth.RoleHospital)
	return updated, nil
}

func (s *CaseService) notifyProgress(ctx context.Context, c *Case, track auth.Role) {
	subject := fmt.Sprintf("Case Updated: %s", c.CaseTitle)
	text := fmt.Sprintf("A case titled %q has been updated. Please log in to review the details.", c.CaseTitle)
	s.notifier.NotifyRole(ctx, auth.RoleAdmin, subject, text, "")
	s.notifier.NotifyRole(ctx, track, subject, text, "")
}

func (s *CaseService) SetEmergency(ctx context.Context, id primitive.ObjectID, isEmergency bool) (*Case, error) {
	return s.repo.SetEmergency(ctx, id, isEmergency)
}

func (s *CaseService) DeleteCase(ctx context.Context, id primitive.ObjectID) (*Case, error) {
	return s.repo.Delete(ctx, id)
}

func (s *CaseService) DeleteAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}

func (s *CaseService) AllCases(ctx context.Context) ([]*Case, error) {
	return s.repo.FindAll(ctx)
}

func (s *CaseService) CaseByID(ctx context.Context, id primitive.ObjectID) (*Case, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CaseService) CasesByCreator(ctx context.Context, userID primitive.ObjectID) ([]*Case, error) {
	return s.repo.FindByCreator(ctx, userID)
}

func (s *CaseService) CasesAssignedToRIB(ctx context.Context, userID primitive.ObjectID) ([]*Case, error) {
	return s.repo.FindAssignedToRIB(ctx, userID)
}

func (s *CaseService) CasesAssignedToHospital(ctx context.Context, userID primitive.ObjectID) ([]*Case, error) {
	return s.repo.FindAssignedToHospital(ctx, userID)
}

func (s *CaseService) CasesByRiskLevel(ctx context.Context, riskLevel string) ([]*Case, error) {
	return s.repo.FindByRiskLevel(ctx, riskLevel)
}

func (s *CaseService) EmergencyCases(ctx context.Context) ([]*Case, error) {
	return s.repo.FindEmergencies(ctx)
}

// CaseCounts returns the 12-bucket monthly histogram for a calendar year.
func (s *CaseService) CaseCounts(ctx context.Context, year int) ([]stats.MonthBucket, error) {
	counts, err := s.repo.MonthlyCounts(ctx, year)
	if err != nil {
		return nil, err
	}
	return stats.ZeroFill(counts), nil
}

func setIf(fields bson.M, key string, value *string) {
	if value != nil {
		fields[key] = *value
	}
}

func caseCreatedHTML(c *Case, creatorName string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: black;">
<p><strong>Dear Admin,</strong></p>
<p>We are pleased to inform you that a new case has been created in the system. Below are the details of the case:</p>
<ul>
<li><strong>Case Title:</strong> %s</li>
<li><strong>Description:</strong> %s</li>
<li><strong>Type of Case:</strong> %s</li>
<li><strong>Date of Incident:</strong> %s</li>
<li><strong>Created By:</strong> %s</li>
</ul>
<p>Please log in to the system to review the case and take any necessary actions.</p>
<p>Best regards,</p>
<p>Isange pro</p>
</div>`, c.CaseTitle, c.Description, c.TypeOfCase, orNotProvided(c.DateOfIncident), creatorName)
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}
