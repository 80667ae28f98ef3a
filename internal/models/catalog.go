package models

import "time"

// CourseContent is a course card on the content page. Contents are created
// and deleted individually by admins; there is no update-in-place.
type CourseContent struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ResourceFile is a downloadable study material. The file body lives on
// disk under the storage directory; FilePath is relative to it.
type ResourceFile struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	FilePath    string    `db:"file_path" json:"-"`
	FileSize    int64     `db:"file_size" json:"file_size"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ReviewVideo is a YouTube lesson recording. YouTubeID is always the
// 11-character identifier extracted from the submitted URL at creation.
type ReviewVideo struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	YouTubeID   string    `db:"youtube_id" json:"youtube_id"`
	SortOrder   *int      `db:"sort_order" json:"order,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CreateContentRequest creates a course content card.
type CreateContentRequest struct {
	Title       string `json:"title" binding:"required" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" binding:"required" validate:"required"`
}

// CreateVideoRequest creates a review video from a raw YouTube URL. The URL
// must yield a valid 11-character identifier or creation is rejected.
type CreateVideoRequest struct {
	Title       string `json:"title" binding:"required" validate:"required"`
	Description string `json:"description"`
	YouTubeURL  string `json:"youtube_url" binding:"required" validate:"required"`
	SortOrder   *int   `json:"order"`
}
