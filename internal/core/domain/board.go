package domain

import "time"

// BoardType selects which kind of entries a board accepts.
type BoardType string

const (
	BoardGuestbook BoardType = "guestbook"
	BoardDrawbox   BoardType = "drawbox"
)

// Valid reports whether t is a known board type.
func (t BoardType) Valid() bool {
	return t == BoardGuestbook || t == BoardDrawbox
}

// Default cosmetic colors for new drawboxes.
const (
	DefaultBrushColor      = "#000000"
	DefaultBackgroundColor = "#FFFFFF"
)

// Board is a user-owned tenant page reachable at its own subdomain or custom
// domain. TotalEntries is denormalized and kept in step with the entries
// table inside the same transaction as every insert/delete.
type Board struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	Type            BoardType `json:"type"`
	Name            string    `json:"name"`
	Domain          string    `json:"domain"`
	Views           int64     `json:"views"`
	TotalEntries    int64     `json:"total_entries"`
	Tier            int       `json:"tier"`
	BrushColor      string    `json:"brush_color"`
	BackgroundColor string    `json:"background_color"`
	CustomCSS       string    `json:"-"`

	ShowCaptcha      bool `json:"show_captcha"`
	ShowNames        bool `json:"show_names"`
	ShowDescriptions bool `json:"show_descriptions"`
	OnIndex          bool `json:"on_index"`

	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// BoardConfig carries a partial board settings update; nil fields are left
// untouched.
type BoardConfig struct {
	ShowCaptcha      *bool
	ShowNames        *bool
	ShowDescriptions *bool
	OnIndex          *bool
	BrushColor       *string
	BackgroundColor  *string
}
