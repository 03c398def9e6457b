package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"go.uber.org/zap"
)

// InstructorApplicationRepository is the interface that wraps methods for
// instructor application data access
type InstructorApplicationRepository interface {
	// Create inserts a new instructor application.
	//
	// "ctx" is the context for the request.
	// "application" is the application to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, application *models.InstructorApplication) error
	// GetByID retrieves an application by ID.
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the application.
	//
	// Returns the application and an error if any.
	GetByID(ctx context.Context, id int) (*models.InstructorApplication, error)
	// GetByUserID retrieves the most recent application of a user.
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns the application and an error if any.
	GetByUserID(ctx context.Context, userID int) (*models.InstructorApplication, error)
	// UpdateStatus updates the review status of an application.
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the application.
	// "status" is the new status.
	// "rejectionReason" is the reason when rejecting, empty otherwise.
	//
	// Returns an error if any.
	UpdateStatus(ctx context.Context, id int, status models.ApplicationStatus, rejectionReason string) error
	// GetAll retrieves a page of applications.
	//
	// "ctx" is the context for the request.
	// "status" is an optional status filter.
	// "page" is the page number to retrieve.
	// "count" is the number of items per page.
	//
	// Returns a list of applications and an error if any.
	GetAll(ctx context.Context, status *models.ApplicationStatus, page, count int) ([]models.InstructorApplication, error)
	// Count counts applications.
	//
	// "ctx" is the context for the request.
	// "status" is an optional status filter.
	//
	// Returns the total and an error if any.
	Count(ctx context.Context, status *models.ApplicationStatus) (int, error)
}

// InstructorUserRepository is the subset of user data access the instructor
// review flow needs
type InstructorUserRepository interface {
	// GetByID retrieves a user by ID.
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns the user and an error if any.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// UpdateRole updates a user's role.
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "role" is the new role.
	//
	// Returns an error if any.
	UpdateRole(ctx context.Context, userID int, role models.Role) error
}

// instructorService implements the instructor application and review flow
type instructorService struct {
	applicationRepo InstructorApplicationRepository
	userRepo        InstructorUserRepository
	logger          *zap.Logger
}

// NewInstructorService creates a new instructor service
func NewInstructorService(applicationRepo InstructorApplicationRepository, userRepo InstructorUserRepository, logger *zap.Logger) *instructorService {
	return &instructorService{
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		logger:          logger,
	}
}

// Apply submits an instructor application for a student. A user can have at
// most one pending application and tutors cannot apply again.
func (s *instructorService) Apply(ctx context.Context, userID int, req *models.ApplyForInstructorRequest) (*models.InstructorApplication, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role >= models.RoleTutor {
		return nil, fmt.Errorf("user is already an instructor")
	}

	existing, err := s.applicationRepo.GetByUserID(ctx, userID)
	if err == nil {
		switch existing.Status {
		case models.ApplicationStatusPending:
			return nil, fmt.Errorf("an application is already pending review")
		case models.ApplicationStatusApproved:
			return nil, fmt.Errorf("application was already approved")
		}
		// A rejected application may be resubmitted
	}

	application := &models.InstructorApplication{
		UserID:             userID,
		Bio:                strings.TrimSpace(req.Bio),
		ExperienceYears:    req.ExperienceYears,
		TeachingExperience: strings.TrimSpace(req.TeachingExperience),
		CourseIntent:       strings.TrimSpace(req.CourseIntent),
		Level:              req.Level,
		Language:           req.Language,
		Status:             models.ApplicationStatusPending,
	}

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}

	s.logger.Info("instructor application submitted",
		zap.Int("applicationId", application.ID), zap.Int("userId", userID))
	return application, nil
}

// GetStatus retrieves a user's latest application
func (s *instructorService) GetStatus(ctx context.Context, userID int) (*models.InstructorApplication, error) {
	return s.applicationRepo.GetByUserID(ctx, userID)
}

// List retrieves a page of applications for admin review
func (s *instructorService) List(ctx context.Context, status *models.ApplicationStatus, page, count int) (*models.InstructorApplicationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 || count > 100 {
		count = 10
	}

	applications, err := s.applicationRepo.GetAll(ctx, status, page, count)
	if err != nil {
		return nil, err
	}

	total, err := s.applicationRepo.Count(ctx, status)
	if err != nil {
		return nil, err
	}

	return &models.InstructorApplicationListResponse{
		Applications: applications,
		Total:        total,
		Page:         page,
		Count:        count,
	}, nil
}

// Approve approves a pending application and promotes the user to tutor
func (s *instructorService) Approve(ctx context.Context, applicationID int) error {
	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if application.Status != models.ApplicationStatusPending {
		return fmt.Errorf("only pending applications can be reviewed")
	}

	if err := s.applicationRepo.UpdateStatus(ctx, applicationID, models.ApplicationStatusApproved, ""); err != nil {
		return err
	}

	if err := s.userRepo.UpdateRole(ctx, application.UserID, models.RoleTutor); err != nil {
		return fmt.Errorf("failed to promote user to tutor: %w", err)
	}

	s.logger.Info("instructor application approved",
		zap.Int("applicationId", applicationID), zap.Int("userId", application.UserID))
	return nil
}

// Reject rejects a pending application with a reason
func (s *instructorService) Reject(ctx context.Context, applicationID int, reason string) error {
	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if application.Status != models.ApplicationStatusPending {
		return fmt.Errorf("only pending applications can be reviewed")
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("rejection reason is required")
	}

	if err := s.applicationRepo.UpdateStatus(ctx, applicationID, models.ApplicationStatusRejected, reason); err != nil {
		return err
	}

	s.logger.Info("instructor application rejected", zap.Int("applicationId", applicationID))
	return nil
}
