package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultArtifactPath is where the regular-product pipeline is persisted,
// relative to the working directory.
const DefaultArtifactPath = "profit_api/profit_margin_pipeline.yaml"

// ArtifactVersion is the only artifact format version Load accepts.
const ArtifactVersion = "1"

// Feature types.
const (
	FeatureNumeric     = "numeric"
	FeatureCategorical = "categorical"
)

// FeatureSpec is one entry of the fitted feature schema.
type FeatureSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ArtifactSpec is the persisted form of a fitted pipeline.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type ArtifactSpec struct {
	Version   string        `yaml:"version"`
	Name      string        `yaml:"name"`
	Target    string        `yaml:"target"`
	Features  []FeatureSpec `yaml:"features"`
	Steps     []StepSpec    `yaml:"steps"`
	Estimator EstimatorSpec `yaml:"estimator"`
}

// Load reads and decodes the artifact at path and builds its pipeline.
// The file is read on every call; nothing is cached. Every failure wraps
// ErrArtifact.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %w", ErrArtifact, path, err)
	}
	spec, err := DecodeArtifact(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p, err := New(spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logrus.Debugf("loaded artifact %s: name=%q features=%d steps=%d estimator=%s width=%d",
		path, spec.Name, len(spec.Features), len(spec.Steps), p.estimator.Kind(), p.width)
	return p, nil
}

// DecodeArtifact parses artifact YAML with strict field checking: unknown keys
// are errors, so a typo cannot silently drop a parameter.
func DecodeArtifact(data []byte) (ArtifactSpec, error) {
	var spec ArtifactSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return ArtifactSpec{}, fmt.Errorf("%w: artifact is empty", ErrArtifact)
		}
		return ArtifactSpec{}, fmt.Errorf("%w: parse artifact YAML: %w", ErrArtifact, err)
	}
	if spec.Version != ArtifactVersion {
		return ArtifactSpec{}, fmt.Errorf("%w: unsupported artifact version %q (want %q)", ErrArtifact, spec.Version, ArtifactVersion)
	}
	return spec, nil
}

// New builds a pipeline from a decoded artifact, validating that every step
// refers to declared features and that the estimator consumes exactly the
// width the steps produce. Every failure wraps ErrArtifact.
func New(spec ArtifactSpec) (*Pipeline, error) {
	if len(spec.Features) == 0 {
		return nil, fmt.Errorf("%w: no features declared", ErrArtifact)
	}
	features := make(map[string]FeatureSpec, len(spec.Features))
	for i, f := range spec.Features {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: features[%d] has no name", ErrArtifact, i)
		}
		if f.Type != FeatureNumeric && f.Type != FeatureCategorical {
			return nil, fmt.Errorf("%w: feature %q has type %q (want %s or %s)", ErrArtifact, f.Name, f.Type, FeatureNumeric, FeatureCategorical)
		}
		if _, dup := features[f.Name]; dup {
			return nil, fmt.Errorf("%w: feature %q declared twice", ErrArtifact, f.Name)
		}
		features[f.Name] = f
	}

	if len(spec.Steps) == 0 {
		return nil, fmt.Errorf("%w: no preprocessing steps", ErrArtifact)
	}
	steps := make([]step, 0, len(spec.Steps))
	width := 0
	for i, ss := range spec.Steps {
		s, err := newStep(ss, features)
		if err != nil {
			return nil, fmt.Errorf("%w: steps[%d]: %w", ErrArtifact, i, err)
		}
		steps = append(steps, s)
		width += s.width()
	}

	if NewEstimatorFunc == nil {
		return nil, fmt.Errorf("%w: no estimator implementations registered (import pipeline/estimator)", ErrArtifact)
	}
	est, err := NewEstimatorFunc(spec.Estimator)
	if err != nil {
		return nil, fmt.Errorf("%w: estimator: %w", ErrArtifact, err)
	}
	if est.NumFeatures() != width {
		return nil, fmt.Errorf("%w: estimator expects %d features, steps produce %d", ErrArtifact, est.NumFeatures(), width)
	}

	return &Pipeline{
		name:      spec.Name,
		target:    spec.Target,
		schema:    append([]FeatureSpec(nil), spec.Features...),
		steps:     steps,
		estimator: est,
		width:     width,
	}, nil
}
