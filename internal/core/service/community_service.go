package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
	"github.com/lifeline/response-dashboard/internal/pkg/metrics"
)

type communityService struct {
	repo      ports.CommunityPostRepository
	publisher ports.ChangePublisher
	log       zerolog.Logger
}

// NewCommunityService returns a CommunityService implementation.
func NewCommunityService(repo ports.CommunityPostRepository, publisher ports.ChangePublisher, log zerolog.Logger) ports.CommunityService {
	return &communityService{repo: repo, publisher: publisher, log: log}
}

func (s *communityService) Create(ctx context.Context, in ports.CreatePostInput) (*domain.CommunityPost, error) {
	if in.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrInvalidRecord)
	}

	postType := in.PostType
	if postType == "" {
		postType = domain.PostBloodRequest
	}
	if !postType.Valid() {
		return nil, fmt.Errorf("%w: unknown post type %q", domain.ErrInvalidRecord, postType)
	}

	bloodType := ""
	if postType == domain.PostBloodRequest && in.BloodType != "" {
		if !domain.ValidBloodType(in.BloodType) {
			return nil, fmt.Errorf("%w: unknown blood type %q", domain.ErrInvalidRecord, in.BloodType)
		}
		bloodType = in.BloodType
	}

	now := time.Now().UTC()
	post := &domain.CommunityPost{
		ID:          uuid.NewString(),
		Title:       title,
		Content:     content,
		PostType:    postType,
		BloodType:   bloodType,
		Location:    strings.TrimSpace(in.Location),
		ContactInfo: strings.TrimSpace(in.ContactInfo),
		Urgent:      in.Urgent,
		UserID:      in.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, post); err != nil {
		s.log.Error().Err(err).Msg("failed to create community post")
		return nil, fmt.Errorf("create community post: %w", err)
	}

	metrics.RecordsCreatedTotal.WithLabelValues(string(domain.KindCommunityPosts)).Inc()
	s.log.Info().Str("post_id", post.ID).Str("post_type", string(postType)).Msg("community post created")
	publishChange(ctx, s.publisher, domain.KindCommunityPosts, s.log)

	return post, nil
}

func (s *communityService) List(ctx context.Context) ([]domain.CommunityPost, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list community posts: %w", err)
	}
	return posts, nil
}
