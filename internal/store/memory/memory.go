package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/store"
)

// Store is an in-memory implementation of the store contracts, used by tests
// and local development. Aggregates are copied on the way in and out so
// callers never share memory with the stored state.
type Store struct {
	mu       sync.RWMutex
	posts    map[string]*domain.Post
	profiles map[string]*domain.Profile
	users    map[string]*domain.User
}

func New() *Store {
	return &Store{
		posts:    make(map[string]*domain.Post),
		profiles: make(map[string]*domain.Profile),
		users:    make(map[string]*domain.User),
	}
}

type PostStore struct{ s *Store }

func (s *Store) Posts() *PostStore { return &PostStore{s: s} }

func (ps *PostStore) Load(ctx context.Context, id string) (*domain.Post, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	post, ok := ps.s.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyPost(post), nil
}

func (ps *PostStore) LoadAll(ctx context.Context) ([]*domain.Post, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	posts := make([]*domain.Post, 0, len(ps.s.posts))
	for _, p := range ps.s.posts {
		posts = append(posts, copyPost(p))
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (ps *PostStore) Save(ctx context.Context, post *domain.Post) error {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	current, ok := ps.s.posts[post.ID]
	if ok && current.Version != post.Version {
		return store.ErrVersionConflict
	}
	if !ok && post.Version != 0 {
		return store.ErrVersionConflict
	}
	saved := copyPost(post)
	saved.Version = post.Version + 1
	ps.s.posts[post.ID] = saved
	post.Version = saved.Version
	return nil
}

func (ps *PostStore) Delete(ctx context.Context, id string) error {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	if _, ok := ps.s.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(ps.s.posts, id)
	return nil
}

func (ps *PostStore) DeleteByAuthor(ctx context.Context, userID string) error {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	for id, p := range ps.s.posts {
		if p.AuthorID == userID {
			delete(ps.s.posts, id)
		}
	}
	return nil
}

type ProfileStore struct{ s *Store }

func (s *Store) Profiles() *ProfileStore { return &ProfileStore{s: s} }

func (ps *ProfileStore) Load(ctx context.Context, userID string) (*domain.Profile, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	profile, ok := ps.s.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyProfile(profile), nil
}

func (ps *ProfileStore) LoadAll(ctx context.Context) ([]*domain.Profile, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	profiles := make([]*domain.Profile, 0, len(ps.s.profiles))
	for _, p := range ps.s.profiles {
		profiles = append(profiles, copyProfile(p))
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.After(profiles[j].CreatedAt)
	})
	return profiles, nil
}

func (ps *ProfileStore) Save(ctx context.Context, profile *domain.Profile) error {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	current, ok := ps.s.profiles[profile.UserID]
	if ok && current.Version != profile.Version {
		return store.ErrVersionConflict
	}
	if !ok && profile.Version != 0 {
		return store.ErrVersionConflict
	}
	saved := copyProfile(profile)
	saved.Version = profile.Version + 1
	ps.s.profiles[profile.UserID] = saved
	profile.Version = saved.Version
	return nil
}

func (ps *ProfileStore) Delete(ctx context.Context, userID string) error {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	if _, ok := ps.s.profiles[userID]; !ok {
		return store.ErrNotFound
	}
	delete(ps.s.profiles, userID)
	return nil
}

type UserStore struct{ s *Store }

func (s *Store) Users() *UserStore { return &UserStore{s: s} }

func (us *UserStore) Load(ctx context.Context, id string) (*domain.User, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()

	user, ok := us.s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (us *UserStore) LoadByEmail(ctx context.Context, email string) (*domain.User, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()

	for _, user := range us.s.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (us *UserStore) LoadDisplay(ctx context.Context, ids []string) (map[string]domain.Owner, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()

	owners := make(map[string]domain.Owner, len(ids))
	for _, id := range ids {
		if user, ok := us.s.users[id]; ok {
			owners[id] = domain.Owner{Name: user.Name, Avatar: user.Avatar}
		}
	}
	return owners, nil
}

func (us *UserStore) Save(ctx context.Context, user *domain.User) error {
	us.s.mu.Lock()
	defer us.s.mu.Unlock()

	u := *user
	us.s.users[user.ID] = &u
	return nil
}

func (us *UserStore) Delete(ctx context.Context, id string) error {
	us.s.mu.Lock()
	defer us.s.mu.Unlock()

	if _, ok := us.s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(us.s.users, id)
	return nil
}

func copyPost(p *domain.Post) *domain.Post {
	cp := *p
	cp.Likes = append([]domain.Like(nil), p.Likes...)
	cp.Comments = append([]domain.Comment(nil), p.Comments...)
	return &cp
}

func copyProfile(p *domain.Profile) *domain.Profile {
	cp := *p
	cp.Skills = append([]string(nil), p.Skills...)
	cp.Experience = append([]domain.Experience(nil), p.Experience...)
	cp.Education = append([]domain.Education(nil), p.Education...)
	return &cp
}
