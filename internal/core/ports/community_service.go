package ports

import (
	"context"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

// CreatePostInput is the typed community post form. Title and Content are required;
// BloodType is kept only on blood requests and must be a known type there.
type CreatePostInput struct {
	UserID      string
	Title       string
	Content     string
	PostType    domain.PostType
	BloodType   string
	Location    string
	ContactInfo string
	Urgent      bool
}

// CommunityService shares and lists community posts.
type CommunityService interface {
	Create(ctx context.Context, input CreatePostInput) (*domain.CommunityPost, error)
	List(ctx context.Context) ([]domain.CommunityPost, error)
}
