package importer

import (
	"io"

	"github.com/imobo/imobo/internal/importer/portal"
	"github.com/imobo/imobo/internal/lead"
)

type Importer interface {
	Parse(r io.Reader) ([]lead.CreateParams, error)
}

// Service turns listing-portal CSV exports into lead create params. The
// portal parser auto-detects which portal produced the file, so callers
// just hand over the upload.
type Service struct {
	portalImporter Importer
}

func NewService() *Service {
	return &Service{
		portalImporter: portal.NewParser(),
	}
}

func (s *Service) Import(r io.Reader) ([]lead.CreateParams, error) {
	return s.portalImporter.Parse(r)
}
