package saved

import "time"

// ItemType names the kind of entity a saved item points at.
type ItemType string

const (
	TypePost ItemType = "post"
	TypeReel ItemType = "reel"
	TypeUser ItemType = "user"
)

// Valid reports whether t is a known saved-item type.
func (t ItemType) Valid() bool {
	switch t {
	case TypePost, TypeReel, TypeUser:
		return true
	default:
		return false
	}
}

// Item is a bookmark from a user to another entity. Items are hard deleted
// on unsave.
type Item struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	ItemType ItemType  `json:"item_type"`
	ItemID   string    `json:"item_id"`
	SavedAt  time.Time `json:"saved_at"`
}
