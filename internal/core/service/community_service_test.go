package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

type stubPostRepo struct {
	posts     []domain.CommunityPost
	insertErr error
	listErr   error
}

func (r *stubPostRepo) Insert(_ context.Context, p *domain.CommunityPost) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.posts = append([]domain.CommunityPost{*p}, r.posts...)
	return nil
}

func (r *stubPostRepo) List(context.Context) ([]domain.CommunityPost, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.CommunityPost(nil), r.posts...), nil
}

func postInput() ports.CreatePostInput {
	return ports.CreatePostInput{
		UserID:    "user-1",
		Title:     "Need O+ donors",
		Content:   "Surgery tomorrow at City Hospital",
		BloodType: "O+",
		Urgent:    true,
	}
}

func TestCommunityService_Create_DefaultsToBloodRequest(t *testing.T) {
	repo := &stubPostRepo{}
	pub := &stubPublisher{}
	svc := NewCommunityService(repo, pub, zerolog.Nop())

	post, err := svc.Create(context.Background(), postInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.PostType != domain.PostBloodRequest {
		t.Errorf("expected blood_request, got %s", post.PostType)
	}
	if post.BloodType != "O+" {
		t.Errorf("expected blood type kept, got %q", post.BloodType)
	}
	if post.Resolved {
		t.Errorf("new posts start unresolved")
	}
	if post.UserID != "user-1" {
		t.Errorf("expected author user-1, got %s", post.UserID)
	}
	if len(pub.events) != 1 || pub.events[0].Kind != domain.KindCommunityPosts {
		t.Errorf("expected one community_posts change event, got %+v", pub.events)
	}
}

func TestCommunityService_Create_DropsBloodTypeOnOtherPosts(t *testing.T) {
	svc := NewCommunityService(&stubPostRepo{}, nil, zerolog.Nop())
	in := postInput()
	in.PostType = domain.PostResourceSharing

	post, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.BloodType != "" {
		t.Errorf("blood type must only be kept on blood requests, got %q", post.BloodType)
	}
}

func TestCommunityService_Create_Validation(t *testing.T) {
	svc := NewCommunityService(&stubPostRepo{}, nil, zerolog.Nop())

	cases := map[string]func(*ports.CreatePostInput){
		"empty title":    func(in *ports.CreatePostInput) { in.Title = " " },
		"empty content":  func(in *ports.CreatePostInput) { in.Content = "" },
		"bad post type":  func(in *ports.CreatePostInput) { in.PostType = "spam" },
		"bad blood type": func(in *ports.CreatePostInput) { in.BloodType = "C+" },
	}
	for name, mutate := range cases {
		in := postInput()
		mutate(&in)
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidRecord) {
			t.Errorf("%s: expected ErrInvalidRecord, got %v", name, err)
		}
	}

	in := postInput()
	in.UserID = ""
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestCommunityService_List_NewestFirst(t *testing.T) {
	svc := NewCommunityService(&stubPostRepo{}, nil, zerolog.Nop())
	first := postInput()
	second := postInput()
	second.Title = "Oxygen concentrator available"
	second.PostType = domain.PostResourceSharing

	_, _ = svc.Create(context.Background(), first)
	_, _ = svc.Create(context.Background(), second)

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Title != second.Title {
		t.Errorf("expected newest first, got %+v", list)
	}
}

func TestCommunityService_RepoErrors(t *testing.T) {
	repo := &stubPostRepo{insertErr: errors.New("db down"), listErr: errors.New("db down")}
	svc := NewCommunityService(repo, nil, zerolog.Nop())

	if _, err := svc.Create(context.Background(), postInput()); err == nil {
		t.Errorf("expected insert error")
	}
	if _, err := svc.List(context.Background()); err == nil {
		t.Errorf("expected list error")
	}
}
