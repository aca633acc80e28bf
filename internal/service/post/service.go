package post

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/roster"
)

const qrImageEndpoint = "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data="

type PostServiceImpl struct {
	post.PostRepository
	roster.RosterRepository
}

func NewPostService(posts post.PostRepository, plans roster.RosterRepository) *PostServiceImpl {
	return &PostServiceImpl{
		PostRepository:   posts,
		RosterRepository: plans,
	}
}

// Create implements post.PostService.
func (s *PostServiceImpl) Create(ctx context.Context, req post.CreatePostRequest) (post.PostResponse, error) {
	if err := req.Validate(); err != nil {
		return post.PostResponse{}, err
	}

	code, err := s.uniqueCode(ctx, req.Name)
	if err != nil {
		return post.PostResponse{}, err
	}

	created, err := s.PostRepository.Create(ctx, post.Post{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		Code:               code,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		Altitude:           req.Altitude,
		RadiusMeters:       req.RadiusMeters,
		MinIntervalMinutes: req.MinIntervalMinutes,
		QRURL:              qrImageEndpoint + url.QueryEscape(code),
		AllowedEmployeeIDs: req.AllowedEmployeeIDs,
		Windows:            toWindows(req.Windows),
	})
	if err != nil {
		return post.PostResponse{}, fmt.Errorf("failed to create post: %w", err)
	}
	return post.ToResponse(created), nil
}

// Update implements post.PostService. The code and QR URL are stable
// across edits so printed QR plates stay valid.
func (s *PostServiceImpl) Update(ctx context.Context, req post.UpdatePostRequest) (post.PostResponse, error) {
	if err := req.Validate(); err != nil {
		return post.PostResponse{}, err
	}

	existing, err := s.PostRepository.GetByID(ctx, req.ID)
	if err != nil {
		return post.PostResponse{}, err
	}

	existing.Name = req.Name
	existing.Latitude = req.Latitude
	existing.Longitude = req.Longitude
	existing.Altitude = req.Altitude
	existing.RadiusMeters = req.RadiusMeters
	existing.MinIntervalMinutes = req.MinIntervalMinutes
	existing.AllowedEmployeeIDs = req.AllowedEmployeeIDs
	existing.Windows = toWindows(req.Windows)

	if err := s.PostRepository.Update(ctx, existing); err != nil {
		return post.PostResponse{}, fmt.Errorf("failed to update post: %w", err)
	}
	return post.ToResponse(existing), nil
}

// Delete implements post.PostService. Roster entries for the post go
// with it; attendance history stays.
func (s *PostServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.PostRepository.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.RosterRepository.DeleteByPost(ctx, id); err != nil {
		return fmt.Errorf("failed to delete roster entries: %w", err)
	}
	return s.PostRepository.Delete(ctx, id)
}

// Get implements post.PostService.
func (s *PostServiceImpl) Get(ctx context.Context, id string) (post.PostResponse, error) {
	p, err := s.PostRepository.GetByID(ctx, id)
	if err != nil {
		return post.PostResponse{}, err
	}
	return post.ToResponse(p), nil
}

// List implements post.PostService.
func (s *PostServiceImpl) List(ctx context.Context) ([]post.PostResponse, error) {
	posts, err := s.PostRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	out := make([]post.PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, post.ToResponse(p))
	}
	return out, nil
}

// uniqueCode derives the human-readable post code printed on QR plates:
// the last word of the name, uppercased, with a "-QR" suffix, and a
// numeric tiebreaker when taken.
func (s *PostServiceImpl) uniqueCode(ctx context.Context, name string) (string, error) {
	base := codeBase(name)
	candidate := base + "-QR"
	for i := 2; ; i++ {
		_, err := s.PostRepository.GetByCode(ctx, candidate)
		if errors.Is(err, post.ErrPostNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check post code: %w", err)
		}
		candidate = fmt.Sprintf("%s-%d-QR", base, i)
	}
}

func codeBase(name string) string {
	words := strings.Fields(strings.ToUpper(name))
	if len(words) == 0 {
		return "POSTO"
	}
	last := words[len(words)-1]
	var b strings.Builder
	for _, r := range last {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "POSTO"
	}
	return b.String()
}

func toWindows(reqs []post.ShiftWindowRequest) []post.ShiftWindow {
	windows := make([]post.ShiftWindow, 0, len(reqs))
	for _, w := range reqs {
		windows = append(windows, post.ShiftWindow{
			ID:     post.ShiftWindowID(w.ID),
			Active: w.Active,
			Start:  w.Start,
			End:    w.End,
		})
	}
	return windows
}
