package domain

import "time"

// VideoArtifact is a finished video that has been materialized and stored.
type VideoArtifact struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	JobID       string    `json:"job_id"`
	Prompt      string    `json:"prompt"`
	URL         string    `json:"url"`
	Delivery    string    `json:"delivery"`
	AspectRatio string    `json:"aspect_ratio"`
	Resolution  string    `json:"resolution"`
	CreatedAt   time.Time `json:"created_at"`
}
