package domain

import "time"

// AccountSnapshot is the cached copy of another account's display fields
// stored inside a following/followers entry.
type AccountSnapshot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Image    string `json:"image,omitempty"`
}

// Account models a registered user together with both relationship lists.
type Account struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Username     string            `json:"username"`
	Email        string            `json:"email"`
	PasswordHash string            `json:"-"`
	Bio          string            `json:"bio,omitempty"`
	Location     string            `json:"location,omitempty"`
	Image        string            `json:"image,omitempty"`
	Following    []AccountSnapshot `json:"following"`
	Followers    []AccountSnapshot `json:"followers"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Snapshot captures the fields other accounts cache about a.
func (a *Account) Snapshot() AccountSnapshot {
	return AccountSnapshot{
		ID:       a.ID,
		Name:     a.Name,
		Username: a.Username,
		Image:    a.Image,
	}
}

// IsFollowing reports whether accountID appears in a.Following.
func (a *Account) IsFollowing(accountID string) bool {
	return indexOf(a.Following, accountID) >= 0
}

// HasFollower reports whether accountID appears in a.Followers.
func (a *Account) HasFollower(accountID string) bool {
	return indexOf(a.Followers, accountID) >= 0
}

// FollowingIDs returns the identifiers of every account a follows.
func (a *Account) FollowingIDs() []string {
	ids := make([]string, 0, len(a.Following))
	for _, s := range a.Following {
		ids = append(ids, s.ID)
	}
	return ids
}

func indexOf(list []AccountSnapshot, accountID string) int {
	for i, s := range list {
		if s.ID == accountID {
			return i
		}
	}
	return -1
}

// ProfileUpdate is a partial profile change; nil fields are left untouched.
type ProfileUpdate struct {
	Name     *string
	Bio      *string
	Location *string
	Image    *string
}

// Empty reports whether the update carries no field at all.
func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Bio == nil && p.Location == nil && p.Image == nil
}
