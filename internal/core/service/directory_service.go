package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

const directionsBaseURL = "https://www.google.com/maps/dir/"

type directoryService struct {
	hospitals  ports.HospitalRepository
	articles   ports.ArticleRepository
	ambulances ports.AmbulanceRepository
}

// NewDirectoryService returns a DirectoryService implementation.
func NewDirectoryService(
	hospitals ports.HospitalRepository,
	articles ports.ArticleRepository,
	ambulances ports.AmbulanceRepository,
) ports.DirectoryService {
	return &directoryService{hospitals: hospitals, articles: articles, ambulances: ambulances}
}

// Hospitals lists hospitals by name with call and directions links.
func (s *directoryService) Hospitals(ctx context.Context) ([]ports.HospitalEntry, error) {
	list, err := s.hospitals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	out := make([]ports.HospitalEntry, 0, len(list))
	for _, h := range list {
		out = append(out, ports.HospitalEntry{
			Hospital:      h,
			CallURL:       "tel:" + h.Phone,
			DirectionsURL: DirectionsURL(h.Latitude, h.Longitude),
		})
	}
	return out, nil
}

// DirectionsURL builds a maps directions link to the given point.
func DirectionsURL(lat, lng float64) string {
	return directionsBaseURL + "?api=1&destination=" +
		strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}

// Articles lists the library newest first, filtered by category and a case-insensitive
// search over title, content and tags.
func (s *directoryService) Articles(ctx context.Context, q ports.ArticleQuery) ([]domain.MedicalArticle, error) {
	list, err := s.articles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	category := strings.TrimSpace(q.Category)
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.MedicalArticle, 0, len(list))
	for _, a := range list {
		if category != "" && category != "all" && a.Category != category {
			continue
		}
		if needle != "" && !articleMatches(a, needle) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func articleMatches(a domain.MedicalArticle, needle string) bool {
	if strings.Contains(strings.ToLower(a.Title), needle) || strings.Contains(strings.ToLower(a.Content), needle) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Ambulances lists the fleet, optionally narrowed to one status.
func (s *directoryService) Ambulances(ctx context.Context, status domain.AmbulanceStatus) ([]domain.FleetAmbulance, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown ambulance status %q", domain.ErrInvalidRecord, status)
	}
	list, err := s.ambulances.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list ambulances: %w", err)
	}
	return list, nil
}
