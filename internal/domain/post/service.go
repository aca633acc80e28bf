package post

import "context"

// PostService defines business logic for post administration.
type PostService interface {
	// Create registers a post, deriving a unique human-readable code from
	// its name and a QR image URL for that code.
	Create(ctx context.Context, req CreatePostRequest) (PostResponse, error)

	Update(ctx context.Context, req UpdatePostRequest) (PostResponse, error)

	Delete(ctx context.Context, id string) error

	Get(ctx context.Context, id string) (PostResponse, error)

	List(ctx context.Context) ([]PostResponse, error)
}
