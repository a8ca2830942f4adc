package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"caucus/contexts/content/press-service/domain/entities"
	domainerrors "caucus/contexts/content/press-service/domain/errors"
	"caucus/contexts/content/press-service/ports"
)

// Store is the in-memory post repository. Slug uniqueness is enforced under
// the mutex so the create command's collision loop behaves like postgres.
type Store struct {
	mu    sync.Mutex
	posts map[string]entities.Post
	slugs map[string]string
}

func NewStore() *Store {
	return &Store{
		posts: make(map[string]entities.Post),
		slugs: make(map[string]string),
	}
}

func (s *Store) InsertPost(_ context.Context, post entities.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.slugs[post.Slug]; taken {
		return domainerrors.ErrSlugTaken
	}
	s.posts[post.PostID] = post
	s.slugs[post.Slug] = post.PostID
	return nil
}

func (s *Store) GetPost(_ context.Context, postID string) (entities.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return post, nil
}

func (s *Store) GetPostBySlug(_ context.Context, slug string) (entities.Post, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	postID, ok := s.slugs[slug]
	if !ok {
		return entities.Post{}, false, nil
	}
	return s.posts[postID], true, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var (
	_ ports.PostRepository = (*Store)(nil)
	_ ports.Clock          = (*Store)(nil)
	_ ports.IDGenerator    = (*Store)(nil)
)
