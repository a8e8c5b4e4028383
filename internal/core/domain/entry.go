package domain

import "time"

// Entry is one visitor submission attached to a board. Guestbook boards fill
// Message/Author/Website; drawbox boards fill ImageName/Creator/Description.
type Entry struct {
	ID          uint      `json:"id"`
	BoardID     uint      `json:"board_id"`
	Message     string    `json:"message,omitempty"`
	Author      string    `json:"author,omitempty"`
	Website     string    `json:"website,omitempty"`
	ImageName   string    `json:"image_name,omitempty"`
	Creator     string    `json:"creator,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Field length caps enforced before anything is written.
const (
	MaxNameLen        = 20
	MaxDescriptionLen = 50
	MaxMessageLen     = 500
)
