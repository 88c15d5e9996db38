package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

type stubHospitalRepo struct {
	list []domain.Hospital
	err  error
}

func (r stubHospitalRepo) List(context.Context) ([]domain.Hospital, error) { return r.list, r.err }

type stubArticleRepo struct {
	list []domain.MedicalArticle
}

func (r stubArticleRepo) List(context.Context) ([]domain.MedicalArticle, error) { return r.list, nil }

type stubAmbulanceRepo struct {
	lastStatus domain.AmbulanceStatus
}

func (r *stubAmbulanceRepo) List(_ context.Context, status domain.AmbulanceStatus) ([]domain.FleetAmbulance, error) {
	r.lastStatus = status
	return []domain.FleetAmbulance{{ID: "a1", VehicleNumber: "AMB-101", Status: domain.AmbulanceAvailable}}, nil
}

func library() stubArticleRepo {
	return stubArticleRepo{list: []domain.MedicalArticle{
		{ID: "1", Title: "CPR Basics", Category: "First Aid", Content: "Push hard and fast", Tags: []string{"cpr", "cardiac"}},
		{ID: "2", Title: "Asthma attacks", Category: "Respiratory", Content: "Use the inhaler", Tags: []string{"breathing"}},
		{ID: "3", Title: "Recognising a heart attack", Category: "Cardiac", Content: "Chest pain, shortness of breath", Tags: nil},
	}}
}

func TestDirectoryService_Hospitals_Links(t *testing.T) {
	repo := stubHospitalRepo{list: []domain.Hospital{
		{ID: "h1", Name: "City Hospital", Phone: "+1-212-555-0100", Latitude: 40.7589, Longitude: -73.9851},
	}}
	svc := NewDirectoryService(repo, library(), &stubAmbulanceRepo{})

	entries, err := svc.Hospitals(context.Background())
	if err != nil {
		t.Fatalf("hospitals: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].CallURL != "tel:+1-212-555-0100" {
		t.Errorf("unexpected call url %q", entries[0].CallURL)
	}
	want := "https://www.google.com/maps/dir/?api=1&destination=40.7589,-73.9851"
	if entries[0].DirectionsURL != want {
		t.Errorf("expected %q, got %q", want, entries[0].DirectionsURL)
	}
}

func TestDirectoryService_Hospitals_RepoError(t *testing.T) {
	svc := NewDirectoryService(stubHospitalRepo{err: errors.New("db down")}, library(), &stubAmbulanceRepo{})
	if _, err := svc.Hospitals(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDirectoryService_Articles_Filters(t *testing.T) {
	svc := NewDirectoryService(stubHospitalRepo{}, library(), &stubAmbulanceRepo{})

	cases := []struct {
		name  string
		query ports.ArticleQuery
		want  []string
	}{
		{"all", ports.ArticleQuery{Category: "all"}, []string{"1", "2", "3"}},
		{"empty category", ports.ArticleQuery{}, []string{"1", "2", "3"}},
		{"category", ports.ArticleQuery{Category: "Cardiac"}, []string{"3"}},
		{"title search is case-insensitive", ports.ArticleQuery{Search: "cpr BASICS"}, []string{"1"}},
		{"content search", ports.ArticleQuery{Search: "inhaler"}, []string{"2"}},
		{"tag search", ports.ArticleQuery{Search: "CARDIAC"}, []string{"1"}},
		{"category and search", ports.ArticleQuery{Category: "Cardiac", Search: "chest"}, []string{"3"}},
		{"no match", ports.ArticleQuery{Search: "fracture"}, nil},
	}
	for _, tc := range cases {
		got, err := svc.Articles(context.Background(), tc.query)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		var ids []string
		for _, a := range got {
			ids = append(ids, a.ID)
		}
		if len(ids) != len(tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, ids)
			continue
		}
		for i := range ids {
			if ids[i] != tc.want[i] {
				t.Errorf("%s: expected %v, got %v", tc.name, tc.want, ids)
				break
			}
		}
	}
}

func TestDirectoryService_Ambulances(t *testing.T) {
	repo := &stubAmbulanceRepo{}
	svc := NewDirectoryService(stubHospitalRepo{}, library(), repo)

	if _, err := svc.Ambulances(context.Background(), domain.AmbulanceAvailable); err != nil {
		t.Fatalf("ambulances: %v", err)
	}
	if repo.lastStatus != domain.AmbulanceAvailable {
		t.Errorf("status filter not forwarded")
	}
	if _, err := svc.Ambulances(context.Background(), "parked"); !errors.Is(err, domain.ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", err)
	}
}
