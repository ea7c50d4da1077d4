// Package testutil provides shared test infrastructure for profit-predict.
// It holds the golden dataset types and assertion helpers used by the
// pipeline and cmd test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Artifact string           `json:"artifact"` // relative to the repo root
	Tests    []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one record and the prediction the shipped artifact gives for it.
type GoldenTestCase struct {
	Name       string          `json:"name"`
	Input      json.RawMessage `json:"input"`
	Prediction float64         `json:"prediction"`
}

// RepoRoot returns the repository root, resolved relative to this source file.
func RepoRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from internal/testutil/ to the repo root
	return filepath.Join(filepath.Dir(thisFile), "..", "..")
}

// TestdataPath returns the absolute path of a file under testdata/.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(RepoRoot(t), "testdata", name)
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// Artifact is rewritten to an absolute path.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	data, err := os.ReadFile(TestdataPath(t, "goldendataset.json"))
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	dataset.Artifact = filepath.Join(RepoRoot(t), dataset.Artifact)

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
