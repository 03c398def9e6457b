package models

import "time"

// CourseBasicResponse is the flat course representation returned after
// create/update operations and inside detail responses
type CourseBasicResponse struct {
	ID              string         `json:"id"`
	TutorID         int            `json:"tutorId"`
	Title           string         `json:"title"`
	Subtitle        string         `json:"subtitle,omitempty"`
	Description     string         `json:"description"`
	Thumbnail       string         `json:"thumbnail,omitempty"`
	Category        CourseCategory `json:"category"`
	Level           CourseLevel    `json:"level"`
	Language        string         `json:"language"`
	Price           float64        `json:"price"`
	Currency        string         `json:"currency"`
	Tags            []string       `json:"tags"`
	Status          CourseStatus   `json:"status"`
	TotalDuration   int            `json:"totalDuration"`
	EnrollmentCount int            `json:"enrollmentCount"`
	PublishedAt     string         `json:"publishedAt,omitempty"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
}

// CourseTutorDetailResponse is the full course representation for the
// authoring UI, including the content tree
type CourseTutorDetailResponse struct {
	CourseBasicResponse
	Modules []Module `json:"modules"`
}

// TutorCourseListItem is the compact course representation for tutor
// dashboard lists
type TutorCourseListItem struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Thumbnail       string         `json:"thumbnail,omitempty"`
	Status          CourseStatus   `json:"status"`
	Level           CourseLevel    `json:"level"`
	Category        CourseCategory `json:"category"`
	TotalDuration   int            `json:"totalDuration"`
	EnrollmentCount int            `json:"enrollmentCount"`
	UpdatedAt       string         `json:"updatedAt"`
	PublishedAt     string         `json:"publishedAt,omitempty"`
}

// TutorCourseListResponse is a paginated list of tutor courses
type TutorCourseListResponse struct {
	Courses []TutorCourseListItem `json:"courses"`
	Total   int                   `json:"total"`
	Page    int                   `json:"page"`
	Count   int                   `json:"count"`
}

// ToCourseBasicResponse flattens a course into its basic response shape
func ToCourseBasicResponse(course *Course) CourseBasicResponse {
	return CourseBasicResponse{
		ID:              course.ID(),
		TutorID:         course.TutorID(),
		Title:           course.Title(),
		Subtitle:        course.Subtitle(),
		Description:     course.Description(),
		Thumbnail:       course.Thumbnail(),
		Category:        course.Category(),
		Level:           course.Level(),
		Language:        course.Language(),
		Price:           course.Price(),
		Currency:        course.Currency(),
		Tags:            course.Tags(),
		Status:          course.Status(),
		TotalDuration:   course.TotalDuration(),
		EnrollmentCount: course.EnrollmentCount(),
		PublishedAt:     formatTimePtr(course.PublishedAt()),
		CreatedAt:       course.CreatedAt().Format(time.RFC3339),
		UpdatedAt:       course.UpdatedAt().Format(time.RFC3339),
	}
}

// ToCourseTutorDetailResponse flattens a course with its full content tree
func ToCourseTutorDetailResponse(course *Course) CourseTutorDetailResponse {
	return CourseTutorDetailResponse{
		CourseBasicResponse: ToCourseBasicResponse(course),
		Modules:             course.Modules(),
	}
}

// ToTutorCourseListItem flattens a course into its dashboard list shape
func ToTutorCourseListItem(course *Course) TutorCourseListItem {
	return TutorCourseListItem{
		ID:              course.ID(),
		Title:           course.Title(),
		Thumbnail:       course.Thumbnail(),
		Status:          course.Status(),
		Level:           course.Level(),
		Category:        course.Category(),
		TotalDuration:   course.TotalDuration(),
		EnrollmentCount: course.EnrollmentCount(),
		UpdatedAt:       course.UpdatedAt().Format(time.RFC3339),
		PublishedAt:     formatTimePtr(course.PublishedAt()),
	}
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
