package run

import (
	"encoding/json"
	"os"
	"time"

	"titanic/domain/core"
	"titanic/internal/errors"
	"titanic/internal/visualize"
)

// ManifestFile is the manifest's name inside the output directory.
const ManifestFile = "manifest.json"

// Input describes the dataset a run consumed
type Input struct {
	Path   string    `json:"path"`
	SHA256 core.Hash `json:"sha256"`
	Rows   int       `json:"rows"`
}

// Manifest records what a run read and wrote. Unlike the text report it
// carries a run ID and timestamp, so it differs between runs.
type Manifest struct {
	RunID         core.RunID              `json:"run_id"`
	CreatedAt     time.Time               `json:"created_at"`
	Input         Input                   `json:"input"`
	HistogramBins int                     `json:"histogram_bins"`
	AgeHistogram  []visualize.Bin         `json:"age_histogram"`
	FareSummaries []visualize.FareSummary `json:"fare_summaries"`
	Artifacts     []core.Artifact         `json:"artifacts"`
}

// NewManifest starts a manifest for a run over input.
func NewManifest(input Input, bins int) *Manifest {
	return &Manifest{
		RunID:         core.NewRunID(),
		CreatedAt:     time.Now().UTC(),
		Input:         input,
		HistogramBins: bins,
	}
}

// AddArtifact records a produced file, hashing its contents.
func (m *Manifest) AddArtifact(kind core.ArtifactKind, path string) error {
	sum, err := core.HashFile(path)
	if err != nil {
		return errors.Wrapf(err, "hash artifact %s", path)
	}
	m.Artifacts = append(m.Artifacts, core.Artifact{Kind: kind, Path: path, SHA256: sum})
	return nil
}

// Artifact returns the recorded artifact of the given kind.
func (m *Manifest) Artifact(kind core.ArtifactKind) (core.Artifact, bool) {
	for _, a := range m.Artifacts {
		if a.Kind == kind {
			return a, true
		}
	}
	return core.Artifact{}, false
}

// Validate checks that the manifest is complete enough to write
func (m *Manifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return errors.InternalError("run manifest: run_id cannot be empty")
	}
	if m.Input.SHA256.IsEmpty() {
		return errors.InternalError("run manifest: input hash cannot be empty")
	}
	if _, ok := m.Artifact(core.ArtifactReport); !ok {
		return errors.InternalError("run manifest: report artifact missing")
	}
	return nil
}

// Write overwrites path with the indented JSON manifest.
func (m *Manifest) Write(path string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode run manifest")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.OutputError(path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by Write.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "decode run manifest %s", path)
	}
	return &m, nil
}
