package pipeline

// Estimator maps one transformed feature vector to a prediction.
// Implementations are immutable after construction.
type Estimator interface {
	// NumFeatures is the length of the vector Predict expects.
	NumFeatures() int

	// Predict returns the estimate for x. len(x) == NumFeatures() is a
	// precondition guaranteed by Pipeline.
	Predict(x []float64) float64

	// Kind is the artifact kind the estimator was built from.
	Kind() string
}

// EstimatorSpec is the estimator section of an artifact. Which fields apply
// depends on Kind.
type EstimatorSpec struct {
	Kind string `yaml:"kind"`

	// linear
	Intercept    float64   `yaml:"intercept,omitempty"`
	Coefficients []float64 `yaml:"coefficients,omitempty"`

	// gradient_boosting
	Init         float64    `yaml:"init,omitempty"`
	LearningRate float64    `yaml:"learning_rate,omitempty"`
	NumFeatures  int        `yaml:"n_features,omitempty"`
	Trees        []TreeSpec `yaml:"trees,omitempty"`
}

// TreeSpec is one fitted regression tree, nodes indexed from the root at 0.
type TreeSpec struct {
	Nodes []NodeSpec `yaml:"nodes"`
}

// NodeSpec is a split node (x[Feature] <= Threshold goes Left) or a leaf.
type NodeSpec struct {
	Leaf      bool    `yaml:"leaf,omitempty"`
	Value     float64 `yaml:"value,omitempty"`
	Feature   int     `yaml:"feature,omitempty"`
	Threshold float64 `yaml:"threshold,omitempty"`
	Left      int     `yaml:"left,omitempty"`
	Right     int     `yaml:"right,omitempty"`
}

// NewEstimatorFunc builds an Estimator from its artifact section.
// Set by pipeline/estimator's init(); nil until that package is imported.
var NewEstimatorFunc func(spec EstimatorSpec) (Estimator, error)
