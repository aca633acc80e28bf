package memory

import (
	"context"
	"time"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
)

type postRepository struct {
	store *Store
}

func NewPostRepository(store *Store) post.PostRepository {
	return &postRepository{store: store}
}

// Create implements post.PostRepository.
func (r *postRepository) Create(ctx context.Context, p post.Post) (post.Post, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.state.Posts {
		if existing.Code == p.Code {
			return post.Post{}, post.ErrCodeExists
		}
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.store.state.Posts = append(r.store.state.Posts, p)
	return p, nil
}

// GetByID implements post.PostRepository.
func (r *postRepository) GetByID(ctx context.Context, id string) (post.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.state.Posts {
		if p.ID == id {
			return p, nil
		}
	}
	return post.Post{}, post.ErrPostNotFound
}

// GetByCode implements post.PostRepository.
func (r *postRepository) GetByCode(ctx context.Context, code string) (post.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.state.Posts {
		if p.Code == code {
			return p, nil
		}
	}
	return post.Post{}, post.ErrPostNotFound
}

// List implements post.PostRepository.
func (r *postRepository) List(ctx context.Context) ([]post.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]post.Post, len(r.store.state.Posts))
	copy(out, r.store.state.Posts)
	return out, nil
}

// Update implements post.PostRepository.
func (r *postRepository) Update(ctx context.Context, p post.Post) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, existing := range r.store.state.Posts {
		if existing.ID == p.ID {
			p.CreatedAt = existing.CreatedAt
			p.UpdatedAt = time.Now().UTC()
			r.store.state.Posts[i] = p
			return nil
		}
	}
	return post.ErrPostNotFound
}

// Delete implements post.PostRepository.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, existing := range r.store.state.Posts {
		if existing.ID == id {
			r.store.state.Posts = append(r.store.state.Posts[:i], r.store.state.Posts[i+1:]...)
			return nil
		}
	}
	return post.ErrPostNotFound
}
