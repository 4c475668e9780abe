package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/99minutos/social-network/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory store implementing the account, relationship and post
// repositories over the same data, mirroring the Mongo documents.
// ---------------------------------------------------------------------------

type memStore struct {
	accounts map[string]*domain.Account
	posts    map[string]*domain.Post
	seq      int

	findErr   error // if set, FindByID returns this error
	createErr error // if set, Create (accounts and posts) returns this error
	existsErr error
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[string]*domain.Account),
		posts:    make(map[string]*domain.Post),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%04d", prefix, m.seq)
}

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	c.Following = append([]domain.AccountSnapshot{}, a.Following...)
	c.Followers = append([]domain.AccountSnapshot{}, a.Followers...)
	return &c
}

func clonePost(p *domain.Post) *domain.Post {
	c := *p
	c.Likes = append([]string{}, p.Likes...)
	return &c
}

// seed inserts an account directly and returns its ID.
func (m *memStore) seed(name, username string) string {
	id := m.nextID("acc")
	m.accounts[id] = &domain.Account{ID: id, Name: name, Username: username, Email: username + "@example.com"}
	return id
}

// --- AccountRepository ---

func (m *memStore) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, existing := range m.accounts {
		if existing.Username == a.Username || existing.Email == a.Email {
			return nil, domain.ErrUserExists
		}
	}
	c := cloneAccount(a)
	c.ID = m.nextID("acc")
	m.accounts[c.ID] = c
	return cloneAccount(c), nil
}

func (m *memStore) FindByID(_ context.Context, id string) (*domain.Account, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	a, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneAccount(a), nil
}

func (m *memStore) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, a := range m.accounts {
		if a.Username == username {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memStore) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, a := range m.accounts {
		if a.Username == username || a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) UpdateProfile(_ context.Context, id string, u domain.ProfileUpdate) (*domain.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.Bio != nil {
		a.Bio = *u.Bio
	}
	if u.Location != nil {
		a.Location = *u.Location
	}
	if u.Image != nil {
		a.Image = *u.Image
	}
	return cloneAccount(a), nil
}

func (m *memStore) ListExcluding(_ context.Context, ids []string) ([]*domain.Account, error) {
	skip := make(map[string]bool, len(ids))
	for _, id := range ids {
		skip[id] = true
	}
	var out []*domain.Account
	for _, id := range m.sortedIDs() {
		if !skip[id] {
			out = append(out, cloneAccount(m.accounts[id]))
		}
	}
	return out, nil
}

func (m *memStore) ListIDs(_ context.Context) ([]string, error) {
	return m.sortedIDs(), nil
}

func (m *memStore) sortedIDs() []string {
	ids := make([]string, 0, len(m.accounts))
	for id := range m.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// --- RelationshipRepository ---

type relStore struct{ *memStore }

func (r relStore) Follow(_ context.Context, follower, followee domain.AccountSnapshot) error {
	a := r.accounts[follower.ID]
	if a.IsFollowing(followee.ID) {
		return domain.ErrAlreadyFollowing
	}
	a.Following = append(a.Following, followee)
	if b := r.accounts[followee.ID]; !b.HasFollower(follower.ID) {
		b.Followers = append(b.Followers, follower)
	}
	return nil
}

func (r relStore) Unfollow(_ context.Context, followerID, followeeID string) error {
	a := r.accounts[followerID]
	if !a.IsFollowing(followeeID) {
		return domain.ErrNotFollowing
	}
	a.Following = without(a.Following, followeeID)
	if b, ok := r.accounts[followeeID]; ok {
		b.Followers = without(b.Followers, followerID)
	}
	return nil
}

func (r relStore) RemoveFollower(_ context.Context, userID, followerID string) error {
	a := r.accounts[userID]
	if !a.HasFollower(followerID) {
		return domain.ErrFollowerNotFound
	}
	a.Followers = without(a.Followers, followerID)
	if b, ok := r.accounts[followerID]; ok {
		b.Following = without(b.Following, userID)
	}
	return nil
}

func (r relStore) EnsureFollower(_ context.Context, accountID string, follower domain.AccountSnapshot) error {
	if a := r.accounts[accountID]; !a.HasFollower(follower.ID) {
		a.Followers = append(a.Followers, follower)
	}
	return nil
}

func (r relStore) DropFollower(_ context.Context, accountID, followerID string) error {
	a := r.accounts[accountID]
	a.Followers = without(a.Followers, followerID)
	return nil
}

func (r relStore) DropFollowing(_ context.Context, accountID, followeeID string) error {
	a := r.accounts[accountID]
	a.Following = without(a.Following, followeeID)
	return nil
}

func without(list []domain.AccountSnapshot, id string) []domain.AccountSnapshot {
	out := list[:0:0]
	for _, s := range list {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

// --- PostRepository ---

type postStore struct{ *memStore }

func (p postStore) Create(_ context.Context, post *domain.Post) error {
	if p.createErr != nil {
		return p.createErr
	}
	post.ID = p.nextID("post")
	p.posts[post.ID] = clonePost(post)
	return nil
}

func (p postStore) FindByID(_ context.Context, id string) (*domain.Post, error) {
	post, ok := p.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(post), nil
}

func (p postStore) List(_ context.Context) ([]*domain.Post, error) {
	out := make([]*domain.Post, 0, len(p.posts))
	for _, post := range p.posts {
		out = append(out, clonePost(post))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (p postStore) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	all, _ := p.List(ctx)
	out := make([]*domain.Post, 0, len(all))
	for _, post := range all {
		if post.User.UserID == authorID {
			out = append(out, post)
		}
	}
	return out, nil
}

func (p postStore) Delete(_ context.Context, id, authorID string) error {
	post, ok := p.posts[id]
	if !ok || post.User.UserID != authorID {
		return domain.ErrPostNotFound
	}
	delete(p.posts, id)
	return nil
}

func (p postStore) ToggleLike(_ context.Context, postID, accountID string) (*domain.Post, error) {
	post, ok := p.posts[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if post.LikedBy(accountID) {
		kept := post.Likes[:0:0]
		for _, id := range post.Likes {
			if id != accountID {
				kept = append(kept, id)
			}
		}
		post.Likes = kept
	} else {
		post.Likes = append(post.Likes, accountID)
	}
	return clonePost(post), nil
}
