package models

import "time"

// ApplicationStatus represents the review state of an instructor application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// InstructorApplication represents a student's application to become a tutor
type InstructorApplication struct {
	ID                 int               `json:"id"`
	UserID             int               `json:"userId"`
	Bio                string            `json:"bio"`
	ExperienceYears    string            `json:"experienceYears"`
	TeachingExperience string            `json:"teachingExperience"` // "yes" or "no"
	CourseIntent       string            `json:"courseIntent"`
	Level              CourseLevel       `json:"level"`
	Language           string            `json:"language"`
	Status             ApplicationStatus `json:"status"`
	RejectionReason    string            `json:"rejectionReason,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// ApplyForInstructorRequest represents a request to apply as an instructor
type ApplyForInstructorRequest struct {
	Bio                string      `json:"bio" validate:"required,max=500"`
	ExperienceYears    string      `json:"experienceYears" validate:"required"`
	TeachingExperience string      `json:"teachingExperience" validate:"required,oneof=yes no"`
	CourseIntent       string      `json:"courseIntent" validate:"required"`
	Level              CourseLevel `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Language           string      `json:"language" validate:"required"`
}

// RejectApplicationRequest represents an admin rejection with a reason
type RejectApplicationRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// InstructorApplicationListResponse is a paginated list of applications
type InstructorApplicationListResponse struct {
	Applications []InstructorApplication `json:"applications"`
	Total        int                     `json:"total"`
	Page         int                     `json:"page"`
	Count        int                     `json:"count"`
}
