package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/anjiri1684/job_portal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStore interface {
	FindJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error)
	FindUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	HasSuccessfulPayment(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	HasApplication(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	CreateApplication(ctx context.Context, application *models.Application) error
}

// EventPublisher pushes a realtime event to a connected user, if any.
type EventPublisher interface {
	Publish(userID uuid.UUID, event interface{})
}

// ApplicationEvent is what a recruiter's websocket connection receives when
// someone applies to one of their jobs.
type ApplicationEvent struct {
	Type          string `json:"type"`
	JobID         string `json:"job_id"`
	JobTitle      string `json:"job_title"`
	ApplicantID   string `json:"applicant_id"`
	ApplicantName string `json:"applicant_name"`
}

type ApplicationService struct {
	store  ApplicationStore
	notify Notifier       // optional
	events EventPublisher // optional
}

func NewApplicationService(store ApplicationStore, notify Notifier, events EventPublisher) *ApplicationService {
	return &ApplicationService{store: store, notify: notify, events: events}
}

// Apply admits an application for (job, applicant). Jobs with a fee require a
// SUCCESS payment record first; free jobs never consult the ledger. The unique
// index on (job_id, applicant_id) backs up the duplicate pre-check, so a
// concurrent double-apply can at worst fail, never admit twice.
func (s *ApplicationService) Apply(ctx context.Context, jobID, applicantID uuid.UUID) (*models.Application, error) {
	job, err := s.store.FindJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	if job.ApplicationFee > 0 {
		paid, err := s.store.HasSuccessfulPayment(ctx, jobID, applicantID)
		if err != nil {
			return nil, err
		}
		if !paid {
			return nil, ErrPaymentRequired
		}
	}

	exists, err := s.store.HasApplication(ctx, jobID, applicantID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	application := &models.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      "pending",
	}
	if err := s.store.CreateApplication(ctx, application); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	s.notifyRecruiter(ctx, job, applicantID)
	return application, nil
}

func (s *ApplicationService) notifyRecruiter(ctx context.Context, job *models.Job, applicantID uuid.UUID) {
	if s.events == nil && s.notify == nil {
		return
	}

	applicant, err := s.store.FindUser(ctx, applicantID)
	if err != nil {
		log.Printf("🔥 Failed to load applicant %s for recruiter notification: %v", applicantID, err)
		return
	}

	if s.events != nil {
		s.events.Publish(job.CreatedByID, ApplicationEvent{
			Type:          "application.received",
			JobID:         job.ID.String(),
			JobTitle:      job.Title,
			ApplicantID:   applicant.ID.String(),
			ApplicantName: applicant.FullName,
		})
	}

	if s.notify != nil {
		recruiter, err := s.store.FindUser(ctx, job.CreatedByID)
		if err != nil {
			log.Printf("🔥 Failed to load recruiter %s for job %s: %v", job.CreatedByID, job.ID, err)
			return
		}
		s.notify.Send(recruiter.FullName, recruiter.Email, "New Application Received",
			fmt.Sprintf("<h1>New Application</h1><p><strong>%s</strong> has applied for <strong>%s</strong>. Review the application from your dashboard.</p>", applicant.FullName, job.Title))
	}
}
