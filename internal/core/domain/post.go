package domain

import "time"

// PostAuthor is the author snapshot captured when the post was created.
// Later profile changes are not propagated to existing posts.
type PostAuthor struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Post is a short text item authored by an account.
type Post struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	User        PostAuthor `json:"user"`
	Likes       []string   `json:"likes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// LikedBy reports whether accountID is in the post's like set.
func (p *Post) LikedBy(accountID string) bool {
	for _, id := range p.Likes {
		if id == accountID {
			return true
		}
	}
	return false
}
