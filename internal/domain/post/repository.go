package post

import "context"

// PostRepository defines data access methods for posts and their shift
// window configuration.
type PostRepository interface {
	Create(ctx context.Context, p Post) (Post, error)

	GetByID(ctx context.Context, id string) (Post, error)

	// GetByCode resolves an operator-entered or scanned post code.
	GetByCode(ctx context.Context, code string) (Post, error)

	List(ctx context.Context) ([]Post, error)

	Update(ctx context.Context, p Post) error

	// Delete removes the post and cascades its roster entries. Attendance
	// history referencing the post is preserved.
	Delete(ctx context.Context, id string) error
}
