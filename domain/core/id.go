package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// RunID identifies one execution of the pipeline
type RunID ID

func (id RunID) String() string { return ID(id).String() }

// NewRunID returns a fresh, time-ordered run ID.
func NewRunID() RunID {
	return RunID(NewID())
}

// ArtifactKind defines types of artifacts
type ArtifactKind string

const (
	ArtifactReport       ArtifactKind = "report"
	ArtifactHTMLReport   ArtifactKind = "html_report"
	ArtifactAgeHistogram ArtifactKind = "age_histogram"
	ArtifactFareBoxPlot  ArtifactKind = "fare_boxplot"
)

// Artifact is a file produced by a run
type Artifact struct {
	Kind   ArtifactKind `json:"kind"`
	Path   string       `json:"path"`
	SHA256 Hash         `json:"sha256,omitempty"`
}
