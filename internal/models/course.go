package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// CourseStatus represents the lifecycle state of a course
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
	CourseStatusArchived  CourseStatus = "archived"
)

// CourseLevel represents the target audience level of a course
type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "beginner"
	CourseLevelIntermediate CourseLevel = "intermediate"
	CourseLevelAdvanced     CourseLevel = "advanced"
	CourseLevelAll          CourseLevel = "all"
)

// CourseCategory represents the subject category of a course
type CourseCategory string

const (
	CourseCategoryDevelopment CourseCategory = "development"
	CourseCategoryDesign      CourseCategory = "design"
	CourseCategoryBusiness    CourseCategory = "business"
	CourseCategoryMarketing   CourseCategory = "marketing"
	CourseCategoryPhotography CourseCategory = "photography"
	CourseCategoryMusic       CourseCategory = "music"
	CourseCategoryHealth      CourseCategory = "health"
	CourseCategoryOther       CourseCategory = "other"
)

// ChapterType represents the content type of a chapter
type ChapterType string

const (
	ChapterTypeVideo ChapterType = "video"
	ChapterTypeText  ChapterType = "text"
)

// VideoStatus represents the upload state of a chapter video
type VideoStatus string

const (
	VideoStatusUploading VideoStatus = "uploading"
	VideoStatusReady     VideoStatus = "ready"
	VideoStatusFailed    VideoStatus = "failed"
)

// validStatusTransitions is the course lifecycle state machine
var validStatusTransitions = map[CourseStatus][]CourseStatus{
	CourseStatusDraft:     {CourseStatusPublished},
	CourseStatusPublished: {CourseStatusArchived, CourseStatusDraft},
	CourseStatusArchived:  {CourseStatusDraft},
}

// VideoMetadata represents an uploaded video attached to a chapter
type VideoMetadata struct {
	S3Key      string      `json:"s3Key"`
	URL        string      `json:"url"`
	Size       int64       `json:"size"`
	MimeType   string      `json:"mimeType"`
	Duration   int         `json:"duration"`
	Status     VideoStatus `json:"status"`
	UploadedAt time.Time   `json:"uploadedAt"`
}

// Chapter represents a single unit of content inside a lesson.
// Content is set only for text chapters; Video only for video chapters.
type Chapter struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Order    int            `json:"order"`
	Type     ChapterType    `json:"type"`
	Duration int            `json:"duration"`
	IsFree   bool           `json:"isFree"`
	Content  string         `json:"content,omitempty"`
	Video    *VideoMetadata `json:"video,omitempty"`
}

// Lesson represents an ordered group of chapters inside a module
type Lesson struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	IsPreview   bool      `json:"isPreview"`
	Duration    int       `json:"duration"`
	Chapters    []Chapter `json:"chapters"`
}

// Module represents an ordered group of lessons inside a course
type Module struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Order       int      `json:"order"`
	Duration    int      `json:"duration"`
	Lessons     []Lesson `json:"lessons"`
}

// CreateCourseData holds the input for the Course factory
type CreateCourseData struct {
	ID          string
	TutorID     int
	Title       string
	Subtitle    string
	Description string
	Category    CourseCategory
	Level       CourseLevel
	Language    string
	Price       float64
	Currency    string
	Tags        []string
}

// UpdateCourseData holds a partial basic-info update. Nil fields are left
// untouched; tags are skipped when the slice is nil.
type UpdateCourseData struct {
	Title       *string
	Subtitle    *string
	Description *string
	Category    *CourseCategory
	Level       *CourseLevel
	Language    *string
	Price       *float64
	Currency    *string
	Tags        []string
}

// AddModuleData holds the input for adding a module
type AddModuleData struct {
	ID          string
	Title       string
	Description string
}

// UpdateModuleData holds a partial module update
type UpdateModuleData struct {
	Title       *string
	Description *string
}

// AddLessonData holds the input for adding a lesson
type AddLessonData struct {
	ID          string
	Title       string
	Description string
	IsPreview   bool
}

// UpdateLessonData holds a partial lesson update
type UpdateLessonData struct {
	Title       *string
	Description *string
	IsPreview   *bool
}

// AddChapterData holds the input for adding a chapter
type AddChapterData struct {
	ID       string
	Title    string
	Type     ChapterType
	IsFree   bool
	Content  string
	Duration int
}

// UpdateChapterData holds a partial chapter update
type UpdateChapterData struct {
	Title    *string
	IsFree   *bool
	Content  *string
	Duration *int
}

// CourseSnapshot is the lossless persistence shape of a course. It is
// produced by Snapshot and consumed by ReconstructCourse; the repository
// stores it as a single document.
type CourseSnapshot struct {
	ID              string       `json:"id"`
	TutorID         int          `json:"tutorId"`
	Title           string       `json:"title"`
	Subtitle        string       `json:"subtitle,omitempty"`
	Description     string       `json:"description"`
	Thumbnail       string       `json:"thumbnail,omitempty"`
	Category        CourseCategory `json:"category"`
	Level           CourseLevel  `json:"level"`
	Language        string       `json:"language"`
	Price           float64      `json:"price"`
	Currency        string       `json:"currency"`
	Tags            []string     `json:"tags"`
	Status          CourseStatus `json:"status"`
	TotalDuration   int          `json:"totalDuration"`
	EnrollmentCount int          `json:"enrollmentCount"`
	Modules         []Module     `json:"modules"`
	PublishedAt     *time.Time   `json:"publishedAt,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// Course is the aggregate root for a tutor-owned content tree. All
// mutations go through its methods so the tree invariants (dense order
// indices, duration rollups, lifecycle transitions) always hold. Accessors
// return copies; callers can never reach the internal tree.
type Course struct {
	id              string
	tutorID         int
	title           string
	subtitle        string
	description     string
	category        CourseCategory
	level           CourseLevel
	language        string
	price           float64
	currency        string
	tags            []string
	status          CourseStatus
	thumbnail       string
	modules         []Module
	publishedAt     *time.Time
	totalDuration   int
	enrollmentCount int
	createdAt       time.Time
	updatedAt       time.Time
}

// CreateCourse creates a new draft course with an empty content tree
func CreateCourse(data CreateCourseData) (*Course, error) {
	if err := validateCourseTitle(data.Title); err != nil {
		return nil, err
	}
	if err := validateCourseDescription(data.Description); err != nil {
		return nil, err
	}
	if data.Price < 0 {
		return nil, NewDomainError("Price cannot be negative")
	}

	currency := data.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	return &Course{
		id:          data.ID,
		tutorID:     data.TutorID,
		title:       strings.TrimSpace(data.Title),
		subtitle:    strings.TrimSpace(data.Subtitle),
		description: strings.TrimSpace(data.Description),
		category:    data.Category,
		level:       data.Level,
		language:    strings.TrimSpace(data.Language),
		price:       data.Price,
		currency:    currency,
		tags:        append([]string(nil), data.Tags...),
		status:      CourseStatusDraft,
		modules:     []Module{},
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructCourse rehydrates a course from trusted persisted state
// without re-validating. The snapshot is assumed to satisfy all invariants.
func ReconstructCourse(snap CourseSnapshot) *Course {
	var publishedAt *time.Time
	if snap.PublishedAt != nil {
		t := *snap.PublishedAt
		publishedAt = &t
	}

	return &Course{
		id:              snap.ID,
		tutorID:         snap.TutorID,
		title:           snap.Title,
		subtitle:        snap.Subtitle,
		description:     snap.Description,
		category:        snap.Category,
		level:           snap.Level,
		language:        snap.Language,
		price:           snap.Price,
		currency:        snap.Currency,
		tags:            append([]string(nil), snap.Tags...),
		status:          snap.Status,
		thumbnail:       snap.Thumbnail,
		modules:         cloneModules(snap.Modules),
		publishedAt:     publishedAt,
		totalDuration:   snap.TotalDuration,
		enrollmentCount: snap.EnrollmentCount,
		createdAt:       snap.CreatedAt,
		updatedAt:       snap.UpdatedAt,
	}
}

// Snapshot returns the lossless persistence shape of the course
func (c *Course) Snapshot() CourseSnapshot {
	var publishedAt *time.Time
	if c.publishedAt != nil {
		t := *c.publishedAt
		publishedAt = &t
	}

	return CourseSnapshot{
		ID:              c.id,
		TutorID:         c.tutorID,
		Title:           c.title,
		Subtitle:        c.subtitle,
		Description:     c.description,
		Thumbnail:       c.thumbnail,
		Category:        c.category,
		Level:           c.level,
		Language:        c.language,
		Price:           c.price,
		Currency:        c.currency,
		Tags:            append([]string(nil), c.tags...),
		Status:          c.status,
		TotalDuration:   c.totalDuration,
		EnrollmentCount: c.enrollmentCount,
		Modules:         cloneModules(c.modules),
		PublishedAt:     publishedAt,
		CreatedAt:       c.createdAt,
		UpdatedAt:       c.updatedAt,
	}
}

func (c *Course) ID() string               { return c.id }
func (c *Course) TutorID() int             { return c.tutorID }
func (c *Course) Title() string            { return c.title }
func (c *Course) Subtitle() string         { return c.subtitle }
func (c *Course) Description() string      { return c.description }
func (c *Course) Category() CourseCategory { return c.category }
func (c *Course) Level() CourseLevel       { return c.level }
func (c *Course) Language() string         { return c.language }
func (c *Course) Price() float64           { return c.price }
func (c *Course) Currency() string         { return c.currency }
func (c *Course) Status() CourseStatus     { return c.status }
func (c *Course) Thumbnail() string        { return c.thumbnail }
func (c *Course) TotalDuration() int       { return c.totalDuration }
func (c *Course) EnrollmentCount() int     { return c.enrollmentCount }
func (c *Course) CreatedAt() time.Time     { return c.createdAt }
func (c *Course) UpdatedAt() time.Time     { return c.updatedAt }

// Tags returns a copy of the course tags
func (c *Course) Tags() []string {
	return append([]string(nil), c.tags...)
}

// Modules returns a deep copy of the content tree
func (c *Course) Modules() []Module {
	return cloneModules(c.modules)
}

// PublishedAt returns the publication time, or nil for unpublished courses
func (c *Course) PublishedAt() *time.Time {
	if c.publishedAt == nil {
		return nil
	}
	t := *c.publishedAt
	return &t
}

// UpdateBasicInfo applies a partial update to the course metadata. Each
// supplied field is validated with the same rules as creation; omitted
// fields are left untouched.
func (c *Course) UpdateBasicInfo(data UpdateCourseData) error {
	if data.Title != nil {
		if err := validateCourseTitle(*data.Title); err != nil {
			return err
		}
	}
	if data.Description != nil {
		if err := validateCourseDescription(*data.Description); err != nil {
			return err
		}
	}
	if data.Price != nil && *data.Price < 0 {
		return NewDomainError("Price cannot be negative")
	}
	if data.Tags != nil && len(data.Tags) > 10 {
		return NewDomainError("Cannot have more than 10 tags")
	}

	if data.Title != nil {
		c.title = strings.TrimSpace(*data.Title)
	}
	if data.Subtitle != nil {
		c.subtitle = strings.TrimSpace(*data.Subtitle)
	}
	if data.Description != nil {
		c.description = strings.TrimSpace(*data.Description)
	}
	if data.Category != nil {
		c.category = *data.Category
	}
	if data.Level != nil {
		c.level = *data.Level
	}
	if data.Language != nil {
		c.language = strings.TrimSpace(*data.Language)
	}
	if data.Price != nil {
		c.price = *data.Price
	}
	if data.Currency != nil {
		c.currency = *data.Currency
	}
	if data.Tags != nil {
		c.tags = append([]string(nil), data.Tags...)
	}

	c.touch()
	return nil
}

// SetThumbnail sets the course thumbnail after validating the URL syntax
func (c *Course) SetThumbnail(thumbnailURL string) error {
	if !isValidURL(thumbnailURL) {
		return NewDomainError("Invalid thumbnail URL")
	}
	c.thumbnail = thumbnailURL
	c.touch()
	return nil
}

// Publish transitions the course from draft to published. The course must
// pass the publish-readiness check; every violation is reported at once.
func (c *Course) Publish() error {
	if err := c.assertTransition(CourseStatusPublished); err != nil {
		return err
	}

	violations := c.validateForPublishing()
	if len(violations) > 0 {
		return NewDomainError("Course cannot be published:\n• %s", strings.Join(violations, "\n• "))
	}

	now := time.Now()
	c.status = CourseStatusPublished
	c.publishedAt = &now
	c.touch()
	return nil
}

// Unpublish transitions a published course back to draft
func (c *Course) Unpublish() error {
	if err := c.assertTransition(CourseStatusDraft); err != nil {
		return err
	}
	c.status = CourseStatusDraft
	c.touch()
	return nil
}

// Archive transitions a published course to archived
func (c *Course) Archive() error {
	if err := c.assertTransition(CourseStatusArchived); err != nil {
		return err
	}
	c.status = CourseStatusArchived
	c.touch()
	return nil
}

// Reactivate transitions an archived course back to draft
func (c *Course) Reactivate() error {
	if err := c.assertTransition(CourseStatusDraft); err != nil {
		return err
	}
	c.status = CourseStatusDraft
	c.touch()
	return nil
}

// AddModule appends a new module at the end of the module list
func (c *Course) AddModule(data AddModuleData) (Module, error) {
	if err := validateChildTitle("Module", data.Title); err != nil {
		return Module{}, err
	}

	module := Module{
		ID:          data.ID,
		Title:       strings.TrimSpace(data.Title),
		Description: strings.TrimSpace(data.Description),
		Order:       len(c.modules),
		Lessons:     []Lesson{},
	}
	c.modules = append(c.modules, module)
	c.touch()
	return cloneModule(module), nil
}

// UpdateModule updates the supplied fields of a module
func (c *Course) UpdateModule(moduleID string, data UpdateModuleData) error {
	module, err := c.findModule(moduleID)
	if err != nil {
		return err
	}

	if data.Title != nil {
		if err := validateChildTitle("Module", *data.Title); err != nil {
			return err
		}
		module.Title = strings.TrimSpace(*data.Title)
	}
	if data.Description != nil {
		module.Description = strings.TrimSpace(*data.Description)
	}

	c.touch()
	return nil
}

// RemoveModule removes a module and re-indexes the remaining modules
func (c *Course) RemoveModule(moduleID string) error {
	index := -1
	for i := range c.modules {
		if c.modules[i].ID == moduleID {
			index = i
			break
		}
	}
	if index == -1 {
		return NewDomainError("Module %s not found", moduleID)
	}

	c.modules = append(c.modules[:index], c.modules[index+1:]...)
	for i := range c.modules {
		c.modules[i].Order = i
	}
	c.recalculateDurations()
	c.touch()
	return nil
}

// ReorderModules rebuilds the module list in the supplied order. The id
// list must be an exact permutation of the current modules; on any mismatch
// the course is left unchanged.
func (c *Course) ReorderModules(orderedIDs []string) error {
	reordered, err := reorderByIDs(c.modules, orderedIDs, "module", func(m *Module) string { return m.ID })
	if err != nil {
		return err
	}
	for i := range reordered {
		reordered[i].Order = i
	}
	c.modules = reordered
	c.touch()
	return nil
}

// AddLesson appends a new lesson at the end of a module's lesson list
func (c *Course) AddLesson(moduleID string, data AddLessonData) (Lesson, error) {
	module, err := c.findModule(moduleID)
	if err != nil {
		return Lesson{}, err
	}
	if err := validateChildTitle("Lesson", data.Title); err != nil {
		return Lesson{}, err
	}

	lesson := Lesson{
		ID:          data.ID,
		Title:       strings.TrimSpace(data.Title),
		Description: strings.TrimSpace(data.Description),
		Order:       len(module.Lessons),
		IsPreview:   data.IsPreview,
		Chapters:    []Chapter{},
	}
	module.Lessons = append(module.Lessons, lesson)
	c.touch()
	return cloneLesson(lesson), nil
}

// UpdateLesson updates the supplied fields of a lesson
func (c *Course) UpdateLesson(moduleID, lessonID string, data UpdateLessonData) error {
	lesson, err := c.findLesson(moduleID, lessonID)
	if err != nil {
		return err
	}

	if data.Title != nil {
		if err := validateChildTitle("Lesson", *data.Title); err != nil {
			return err
		}
		lesson.Title = strings.TrimSpace(*data.Title)
	}
	if data.Description != nil {
		lesson.Description = strings.TrimSpace(*data.Description)
	}
	if data.IsPreview != nil {
		lesson.IsPreview = *data.IsPreview
	}

	c.touch()
	return nil
}

// RemoveLesson removes a lesson and re-indexes the remaining lessons
func (c *Course) RemoveLesson(moduleID, lessonID string) error {
	module, err := c.findModule(moduleID)
	if err != nil {
		return err
	}

	index := -1
	for i := range module.Lessons {
		if module.Lessons[i].ID == lessonID {
			index = i
			break
		}
	}
	if index == -1 {
		return NewDomainError("Lesson %s not found", lessonID)
	}

	module.Lessons = append(module.Lessons[:index], module.Lessons[index+1:]...)
	for i := range module.Lessons {
		module.Lessons[i].Order = i
	}
	c.recalculateDurations()
	c.touch()
	return nil
}

// ReorderLessons rebuilds a module's lesson list in the supplied order
func (c *Course) ReorderLessons(moduleID string, orderedIDs []string) error {
	module, err := c.findModule(moduleID)
	if err != nil {
		return err
	}

	reordered, err := reorderByIDs(module.Lessons, orderedIDs, "lesson", func(l *Lesson) string { return l.ID })
	if err != nil {
		return err
	}
	for i := range reordered {
		reordered[i].Order = i
	}
	module.Lessons = reordered
	c.touch()
	return nil
}

// AddChapter appends a new chapter at the end of a lesson's chapter list.
// Text chapters must carry content; video chapters start with no video.
func (c *Course) AddChapter(moduleID, lessonID string, data AddChapterData) (Chapter, error) {
	lesson, err := c.findLesson(moduleID, lessonID)
	if err != nil {
		return Chapter{}, err
	}
	if err := validateChildTitle("Chapter", data.Title); err != nil {
		return Chapter{}, err
	}
	if data.Type == ChapterTypeText && strings.TrimSpace(data.Content) == "" {
		return Chapter{}, NewDomainError("Text chapters must have content")
	}

	chapter := Chapter{
		ID:       data.ID,
		Title:    strings.TrimSpace(data.Title),
		Order:    len(lesson.Chapters),
		Type:     data.Type,
		Duration: data.Duration,
		IsFree:   data.IsFree,
	}
	if data.Type == ChapterTypeText {
		chapter.Content = data.Content
	}

	lesson.Chapters = append(lesson.Chapters, chapter)
	c.recalculateDurations()
	c.touch()
	return cloneChapter(chapter), nil
}

// UpdateChapter updates the supplied fields of a chapter. A duration
// change triggers a full rollup recalculation.
func (c *Course) UpdateChapter(moduleID, lessonID, chapterID string, data UpdateChapterData) error {
	chapter, err := c.findChapter(moduleID, lessonID, chapterID)
	if err != nil {
		return err
	}

	if data.Title != nil {
		if err := validateChildTitle("Chapter", *data.Title); err != nil {
			return err
		}
		chapter.Title = strings.TrimSpace(*data.Title)
	}
	if data.IsFree != nil {
		chapter.IsFree = *data.IsFree
	}
	if data.Content != nil {
		chapter.Content = *data.Content
	}
	if data.Duration != nil {
		chapter.Duration = *data.Duration
		c.recalculateDurations()
	}

	c.touch()
	return nil
}

// RemoveChapter removes a chapter and re-indexes the remaining chapters
func (c *Course) RemoveChapter(moduleID, lessonID, chapterID string) error {
	lesson, err := c.findLesson(moduleID, lessonID)
	if err != nil {
		return err
	}

	index := -1
	for i := range lesson.Chapters {
		if lesson.Chapters[i].ID == chapterID {
			index = i
			break
		}
	}
	if index == -1 {
		return NewDomainError("Chapter %s not found", chapterID)
	}

	lesson.Chapters = append(lesson.Chapters[:index], lesson.Chapters[index+1:]...)
	for i := range lesson.Chapters {
		lesson.Chapters[i].Order = i
	}
	c.recalculateDurations()
	c.touch()
	return nil
}

// ReorderChapters rebuilds a lesson's chapter list in the supplied order
func (c *Course) ReorderChapters(moduleID, lessonID string, orderedIDs []string) error {
	lesson, err := c.findLesson(moduleID, lessonID)
	if err != nil {
		return err
	}

	reordered, err := reorderByIDs(lesson.Chapters, orderedIDs, "chapter", func(ch *Chapter) string { return ch.ID })
	if err != nil {
		return err
	}
	for i := range reordered {
		reordered[i].Order = i
	}
	lesson.Chapters = reordered
	c.touch()
	return nil
}

// AttachVideo stores uploaded video metadata on a video chapter. The video
// typically arrives in the uploading state and is finalized by ConfirmVideo.
func (c *Course) AttachVideo(moduleID, lessonID, chapterID string, metadata VideoMetadata) error {
	chapter, err := c.findChapter(moduleID, lessonID, chapterID)
	if err != nil {
		return err
	}
	if chapter.Type != ChapterTypeVideo {
		return NewDomainError("Cannot attach video to a non-video chapter")
	}

	video := metadata
	chapter.Video = &video
	c.touch()
	return nil
}

// ConfirmVideo marks a previously attached video as ready, adopts its final
// duration as the chapter duration and recalculates the rollups.
func (c *Course) ConfirmVideo(moduleID, lessonID, chapterID string, duration int) error {
	chapter, err := c.findChapter(moduleID, lessonID, chapterID)
	if err != nil {
		return err
	}
	if chapter.Video == nil {
		return NewDomainError("No video is attached to this chapter")
	}

	chapter.Video.Status = VideoStatusReady
	chapter.Video.Duration = duration
	chapter.Duration = duration
	c.recalculateDurations()
	c.touch()
	return nil
}

// assertTransition checks the lifecycle state machine
func (c *Course) assertTransition(target CourseStatus) error {
	for _, allowed := range validStatusTransitions[c.status] {
		if allowed == target {
			return nil
		}
	}
	return NewDomainError("Cannot transition course status from '%s' to '%s'", c.status, target)
}

// validateForPublishing collects every publish-readiness violation instead
// of stopping at the first one, so the tutor sees the complete list.
func (c *Course) validateForPublishing() []string {
	var violations []string

	if utf8.RuneCountInString(c.title) < 3 {
		violations = append(violations, "Title must be at least 3 characters")
	}
	if utf8.RuneCountInString(c.description) < 20 {
		violations = append(violations, "Description must be at least 20 characters")
	}
	if c.thumbnail == "" {
		violations = append(violations, "Thumbnail image is required")
	}
	if len(c.modules) == 0 {
		violations = append(violations, "Course must have at least one module")
	}

	for i := range c.modules {
		module := &c.modules[i]
		if len(module.Lessons) == 0 {
			violations = append(violations, fmt.Sprintf("Module %q must have at least one lesson", module.Title))
			continue
		}
		for j := range module.Lessons {
			lesson := &module.Lessons[j]
			if len(lesson.Chapters) == 0 {
				violations = append(violations, fmt.Sprintf("Lesson %q in module %q must have at least one chapter", lesson.Title, module.Title))
				continue
			}
			for k := range lesson.Chapters {
				chapter := &lesson.Chapters[k]
				if chapter.Type == ChapterTypeVideo && (chapter.Video == nil || chapter.Video.Status != VideoStatusReady) {
					violations = append(violations, fmt.Sprintf("Chapter %q has a video that is not ready", chapter.Title))
				}
			}
		}
	}

	return violations
}

// recalculateDurations recomputes every duration rollup top-down. A full
// recompute is always cheap enough for a single course and cannot drift.
func (c *Course) recalculateDurations() {
	total := 0
	for i := range c.modules {
		module := &c.modules[i]
		moduleDuration := 0
		for j := range module.Lessons {
			lesson := &module.Lessons[j]
			lessonDuration := 0
			for k := range lesson.Chapters {
				lessonDuration += lesson.Chapters[k].Duration
			}
			lesson.Duration = lessonDuration
			moduleDuration += lessonDuration
		}
		module.Duration = moduleDuration
		total += moduleDuration
	}
	c.totalDuration = total
}

func (c *Course) findModule(moduleID string) (*Module, error) {
	for i := range c.modules {
		if c.modules[i].ID == moduleID {
			return &c.modules[i], nil
		}
	}
	return nil, NewDomainError("Module %s not found", moduleID)
}

func (c *Course) findLesson(moduleID, lessonID string) (*Lesson, error) {
	module, err := c.findModule(moduleID)
	if err != nil {
		return nil, err
	}
	for i := range module.Lessons {
		if module.Lessons[i].ID == lessonID {
			return &module.Lessons[i], nil
		}
	}
	return nil, NewDomainError("Lesson %s not found", lessonID)
}

func (c *Course) findChapter(moduleID, lessonID, chapterID string) (*Chapter, error) {
	lesson, err := c.findLesson(moduleID, lessonID)
	if err != nil {
		return nil, err
	}
	for i := range lesson.Chapters {
		if lesson.Chapters[i].ID == chapterID {
			return &lesson.Chapters[i], nil
		}
	}
	return nil, NewDomainError("Chapter %s not found", chapterID)
}

func (c *Course) touch() {
	c.updatedAt = time.Now()
}

// reorderByIDs rebuilds items in the order given by orderedIDs. The id list
// must match the current items exactly: same length, same set, no
// duplicates. Validation happens before any state is touched.
func reorderByIDs[T any](items []T, orderedIDs []string, kind string, id func(*T) string) ([]T, error) {
	if len(orderedIDs) != len(items) {
		return nil, NewDomainError("Ordered IDs must include every %s exactly once", kind)
	}

	byID := make(map[string]*T, len(items))
	for i := range items {
		byID[id(&items[i])] = &items[i]
	}

	seen := make(map[string]bool, len(orderedIDs))
	for _, itemID := range orderedIDs {
		if _, ok := byID[itemID]; !ok {
			return nil, NewDomainError("%s %s not found", strings.ToUpper(kind[:1])+kind[1:], itemID)
		}
		if seen[itemID] {
			return nil, NewDomainError("Ordered IDs must include every %s exactly once", kind)
		}
		seen[itemID] = true
	}

	reordered := make([]T, 0, len(items))
	for _, itemID := range orderedIDs {
		reordered = append(reordered, *byID[itemID])
	}
	return reordered, nil
}

func cloneModules(modules []Module) []Module {
	cloned := make([]Module, len(modules))
	for i := range modules {
		cloned[i] = cloneModule(modules[i])
	}
	return cloned
}

func cloneModule(module Module) Module {
	cloned := module
	cloned.Lessons = make([]Lesson, len(module.Lessons))
	for i := range module.Lessons {
		cloned.Lessons[i] = cloneLesson(module.Lessons[i])
	}
	return cloned
}

func cloneLesson(lesson Lesson) Lesson {
	cloned := lesson
	cloned.Chapters = make([]Chapter, len(lesson.Chapters))
	for i := range lesson.Chapters {
		cloned.Chapters[i] = cloneChapter(lesson.Chapters[i])
	}
	return cloned
}

func cloneChapter(chapter Chapter) Chapter {
	cloned := chapter
	if chapter.Video != nil {
		video := *chapter.Video
		cloned.Video = &video
	}
	return cloned
}

// Length limits count characters, not bytes, so multi-byte scripts get the
// same bounds as ASCII.
func validateCourseTitle(title string) error {
	length := utf8.RuneCountInString(strings.TrimSpace(title))
	if length < 3 {
		return NewDomainError("Title must be at least 3 characters")
	}
	if length > 120 {
		return NewDomainError("Title cannot exceed 120 characters")
	}
	return nil
}

func validateCourseDescription(description string) error {
	length := utf8.RuneCountInString(strings.TrimSpace(description))
	if length < 20 {
		return NewDomainError("Description must be at least 20 characters")
	}
	if length > 5000 {
		return NewDomainError("Description cannot exceed 5000 characters")
	}
	return nil
}

func validateChildTitle(kind, title string) error {
	length := utf8.RuneCountInString(strings.TrimSpace(title))
	if length < 3 {
		return NewDomainError("%s title must be at least 3 characters", kind)
	}
	if length > 150 {
		return NewDomainError("%s title cannot exceed 150 characters", kind)
	}
	return nil
}

func isValidURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
