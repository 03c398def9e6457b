package models

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Title       string         `json:"title" validate:"required,min=3,max=120"`
	Subtitle    string         `json:"subtitle"`
	Description string         `json:"description" validate:"required,min=20,max=5000"`
	Category    CourseCategory `json:"category" validate:"required,oneof=development design business marketing photography music health other"`
	Level       CourseLevel    `json:"level" validate:"required,oneof=beginner intermediate advanced all"`
	Language    string         `json:"language" validate:"required"`
	Price       float64        `json:"price" validate:"gte=0"`
	Currency    string         `json:"currency"`
	Tags        []string       `json:"tags" validate:"max=10"`
}

// UpdateCourseRequest represents a partial basic-info update
type UpdateCourseRequest struct {
	Title       *string         `json:"title,omitempty" validate:"omitempty,min=3,max=120"`
	Subtitle    *string         `json:"subtitle,omitempty"`
	Description *string         `json:"description,omitempty" validate:"omitempty,min=20,max=5000"`
	Category    *CourseCategory `json:"category,omitempty" validate:"omitempty,oneof=development design business marketing photography music health other"`
	Level       *CourseLevel    `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced all"`
	Language    *string         `json:"language,omitempty"`
	Price       *float64        `json:"price,omitempty" validate:"omitempty,gte=0"`
	Currency    *string         `json:"currency,omitempty"`
	Tags        []string        `json:"tags,omitempty" validate:"omitempty,max=10"`
}

// SetThumbnailRequest represents a request to set the course thumbnail
type SetThumbnailRequest struct {
	Thumbnail string `json:"thumbnail" validate:"required,url"`
}

// AddModuleRequest represents a request to add a module
type AddModuleRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=150"`
	Description string `json:"description"`
}

// UpdateModuleRequest represents a partial module update
type UpdateModuleRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	Description *string `json:"description,omitempty"`
}

// AddLessonRequest represents a request to add a lesson
type AddLessonRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=150"`
	Description string `json:"description"`
	IsPreview   bool   `json:"isPreview"`
}

// UpdateLessonRequest represents a partial lesson update
type UpdateLessonRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	Description *string `json:"description,omitempty"`
	IsPreview   *bool   `json:"isPreview,omitempty"`
}

// AddChapterRequest represents a request to add a chapter
type AddChapterRequest struct {
	Title    string      `json:"title" validate:"required,min=3,max=150"`
	Type     ChapterType `json:"type" validate:"required,oneof=video text"`
	IsFree   bool        `json:"isFree"`
	Content  string      `json:"content"`
	Duration int         `json:"duration" validate:"gte=0"`
}

// UpdateChapterRequest represents a partial chapter update
type UpdateChapterRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	IsFree   *bool   `json:"isFree,omitempty"`
	Content  *string `json:"content,omitempty"`
	Duration *int    `json:"duration,omitempty" validate:"omitempty,gte=0"`
}

// ReorderRequest represents a request to reorder a sibling list
type ReorderRequest struct {
	OrderedIDs []string `json:"orderedIds" validate:"required,min=1,dive,required"`
}

// AttachVideoRequest represents uploaded video metadata to attach to a chapter
type AttachVideoRequest struct {
	S3Key    string `json:"s3Key" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
	Size     int64  `json:"size" validate:"gte=0"`
	MimeType string `json:"mimeType" validate:"required"`
}

// ConfirmVideoRequest represents the final duration of a processed video
type ConfirmVideoRequest struct {
	Duration int `json:"duration" validate:"required,gt=0"`
}
