// package services defines interface Catalog for searching remote song catalogs over HTTP
//
// iTunes Search API
package services

import (
	"context"

	"github.com/desertthunder/woodshed/internal/models"
)

// Catalog defines the interface for remote song catalogs the user searches before adding songs.
type Catalog interface {
	// Search returns candidates matching a free text term.
	// An empty slice means no matches; failures wrap [shared.ErrSearchUnavailable].
	Search(ctx context.Context, term string) ([]models.Candidate, error)

	// Name returns the name of the catalog (e.g., "iTunes")
	Name() string
}
