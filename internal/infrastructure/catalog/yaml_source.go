// Package catalog discovers command definitions and builds the allow-list
// catalog the validator checks invocations against.
package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/pkg/filesystem"
	"github.com/doeshing/vox-go/internal/ports"
)

// sourceDocument is the YAML schema root of one command-definition file.
type sourceDocument struct {
	Commands []domain.CommandDescriptor `yaml:"commands"`
}

// YAMLSource reads command descriptors from a YAML definition file.
type YAMLSource struct {
	path string
}

// NewYAMLSource builds a source for one definition file path.
func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: filesystem.ExpandPath(path)}
}

// Identifier implements ports.CatalogSource.
func (s *YAMLSource) Identifier() string {
	return s.path
}

// Discover implements ports.CatalogSource. Entries without a name are
// rejected so a malformed file cannot smuggle an unmatchable descriptor
// into the allow-list.
func (s *YAMLSource) Discover(context.Context) ([]domain.CommandDescriptor, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var doc sourceDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	descriptors := make([]domain.CommandDescriptor, 0, len(doc.Commands))
	for i, d := range doc.Commands {
		d.Name = strings.TrimSpace(d.Name)
		if d.Name == "" {
			return nil, fmt.Errorf("parse: command entry %d has no name", i)
		}
		d.Source = s.path
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

var _ ports.CatalogSource = (*YAMLSource)(nil)
