package domain

import "time"

// Entry is a single announcement or chat message.
type Entry struct {
	Author string    `json:"author"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
}

// FileLink is read-only reference data shown on the files page.
type FileLink struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Embed bool   `json:"embed,omitempty"`
}
