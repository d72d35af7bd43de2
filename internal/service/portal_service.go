package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"cardinal-portal/internal/domain"
)

// ErrDataUnavailable indicates the portal configuration document could not
// be read or parsed.
var ErrDataUnavailable = errors.New("failed to load portal data")

// PortalService serves the portal link configuration.
type PortalService interface {
	Load(ctx context.Context) (*domain.PortalDocument, error)
}

type portalService struct {
	path string
}

func NewPortalService(path string) PortalService {
	return &portalService{path: path}
}

// Load re-reads the document on every call so edits to the configuration
// file show up without a restart.
func (s *portalService) Load(ctx context.Context) (*domain.PortalDocument, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, ErrDataUnavailable
	}

	var doc domain.PortalDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, ErrDataUnavailable
	}
	return &doc, nil
}
