package quicksetup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-quicksetup/pkg/widget"
)

// Format selects the document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	// ErrNoStage is returned for documents without stages and for stage
	// indexes out of range.
	ErrNoStage = errors.New("quicksetup: no such stage")
	// ErrUnknownFormat is returned when a document format cannot be determined.
	ErrUnknownFormat = errors.New("quicksetup: unknown document format")
)

// Document is a complete quick setup definition.
type Document struct {
	ID        string      `json:"id" yaml:"id"`
	Title     string      `json:"title,omitempty" yaml:"title,omitempty"`
	SaveLabel string      `json:"save_label,omitempty" yaml:"save_label,omitempty"`
	Stages    []StageSpec `json:"stages" yaml:"stages"`
}

// StageSpec describes one wizard stage. Recap overrides the recap derived
// from the stage's form specs once the stage is completed.
type StageSpec struct {
	Title      string        `json:"title" yaml:"title"`
	SubTitle   string        `json:"sub_title,omitempty" yaml:"sub_title,omitempty"`
	NextLabel  string        `json:"next_label,omitempty" yaml:"next_label,omitempty"`
	PrevLabel  string        `json:"prev_label,omitempty" yaml:"prev_label,omitempty"`
	Components []widget.Spec `json:"components" yaml:"components"`
	Recap      []widget.Spec `json:"recap,omitempty" yaml:"recap,omitempty"`
}

// Load decodes a document in the given format.
func Load(data []byte, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Document{}, fmt.Errorf("quicksetup: decode yaml: %w", err)
		}
		for idx := range doc.Stages {
			widget.NormalizePayloads(doc.Stages[idx].Components)
			widget.NormalizePayloads(doc.Stages[idx].Recap)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return Document{}, fmt.Errorf("quicksetup: decode json: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if len(doc.Stages) == 0 {
		return Document{}, fmt.Errorf("quicksetup: document %q: %w", doc.ID, ErrNoStage)
	}
	return doc, nil
}

// LoadFile reads a document from disk, picking the format from the file
// extension.
func LoadFile(path string) (Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("quicksetup: read document: %w", err)
	}
	return Load(data, format)
}

// FormatFromPath maps .yaml/.yml and .json extensions to a Format.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}
