package domain

import "time"

// RawManuscript is an unprocessed chapter file as read from disk or received over an API.
type RawManuscript struct {
	// URI is the original location (file path, URL, etc).
	URI string

	// MIMEType is the content type (e.g., "text/markdown").
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// Manuscript is prose ready for analysis, with markup removed.
type Manuscript struct {
	ID        string
	URI       string
	Title     string
	Format    string
	Content   string
	CreatedAt time.Time
}
