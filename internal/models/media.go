package models

// MediaType names the kinds of files tutors upload
type MediaType string

const (
	MediaTypeVideo     MediaType = "videos"
	MediaTypeThumbnail MediaType = "thumbnails"
)

// IsValidMediaType checks whether a media type is one of the known kinds
func IsValidMediaType(mediaType MediaType) bool {
	return mediaType == MediaTypeVideo || mediaType == MediaTypeThumbnail
}

// UploadResult describes a stored file. Key is what gets attached to a
// chapter or set as a course thumbnail.
type UploadResult struct {
	Key       string    `json:"key"`
	Filename  string    `json:"filename"`
	MediaType MediaType `json:"mediaType"`
	Size      int64     `json:"size"`
}
