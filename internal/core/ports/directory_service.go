package ports

import (
	"context"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

// HospitalEntry is a directory row with its contact links.
type HospitalEntry struct {
	Hospital      domain.Hospital
	CallURL       string
	DirectionsURL string
}

// ArticleQuery filters the library. Category "all" or empty disables the category filter.
type ArticleQuery struct {
	Category string
	Search   string
}

// DirectoryService serves the read-only hospital directory, medical library and fleet.
type DirectoryService interface {
	Hospitals(ctx context.Context) ([]HospitalEntry, error)
	Articles(ctx context.Context, q ArticleQuery) ([]domain.MedicalArticle, error)
	Ambulances(ctx context.Context, status domain.AmbulanceStatus) ([]domain.FleetAmbulance, error)
}
