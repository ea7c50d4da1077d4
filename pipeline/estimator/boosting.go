package estimator

import (
	"fmt"
	"math"

	"github.com/profitalyze/profit-predict/pipeline"
)

// GradientBoosting predicts baseline + learningRate * Σ tree(x) over its trees.
// Trees are validated at construction so Predict never loops or indexes out
// of range.
type GradientBoosting struct {
	baseline     float64
	learningRate float64
	numFeatures  int
	trees        []tree
}

type node struct {
	leaf        bool
	value       float64
	feature     int
	threshold   float64
	left, right int
}

type tree []node

// NewGradientBoosting validates the fitted ensemble.
func NewGradientBoosting(baseline, learningRate float64, numFeatures int, specs []pipeline.TreeSpec) (*GradientBoosting, error) {
	if numFeatures <= 0 {
		return nil, fmt.Errorf("gradient_boosting: n_features must be > 0, got %d", numFeatures)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("gradient_boosting: no trees")
	}
	if err := validateCoeffs("gradient_boosting: [init learning_rate]", []float64{baseline, learningRate}); err != nil {
		return nil, err
	}
	if learningRate <= 0 {
		return nil, fmt.Errorf("gradient_boosting: learning_rate must be > 0, got %v", learningRate)
	}
	m := &GradientBoosting{baseline: baseline, learningRate: learningRate, numFeatures: numFeatures}
	for i, s := range specs {
		t, err := newTree(s, numFeatures)
		if err != nil {
			return nil, fmt.Errorf("gradient_boosting: trees[%d]: %w", i, err)
		}
		m.trees = append(m.trees, t)
	}
	return m, nil
}

func newTree(spec pipeline.TreeSpec, numFeatures int) (tree, error) {
	n := len(spec.Nodes)
	if n == 0 {
		return nil, fmt.Errorf("no nodes")
	}
	t := make(tree, n)
	for i, s := range spec.Nodes {
		if s.Leaf {
			if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
				return nil, fmt.Errorf("node %d: value is not finite", i)
			}
			t[i] = node{leaf: true, value: s.Value}
			continue
		}
		if s.Feature < 0 || s.Feature >= numFeatures {
			return nil, fmt.Errorf("node %d: feature %d out of range [0,%d)", i, s.Feature, numFeatures)
		}
		if math.IsNaN(s.Threshold) {
			return nil, fmt.Errorf("node %d: threshold is NaN", i)
		}
		for _, child := range []int{s.Left, s.Right} {
			if child <= 0 || child >= n {
				return nil, fmt.Errorf("node %d: child %d out of range (0,%d)", i, child, n)
			}
		}
		t[i] = node{feature: s.Feature, threshold: s.Threshold, left: s.Left, right: s.Right}
	}

	// Every node reachable from the root must be entered exactly once.
	seen := make([]bool, n)
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[i] {
			return nil, fmt.Errorf("node %d is reachable twice (cycle or shared subtree)", i)
		}
		seen[i] = true
		if !t[i].leaf {
			stack = append(stack, t[i].left, t[i].right)
		}
	}
	return t, nil
}

func (t tree) eval(x []float64) float64 {
	i := 0
	for !t[i].leaf {
		if x[t[i].feature] <= t[i].threshold {
			i = t[i].left
		} else {
			i = t[i].right
		}
	}
	return t[i].value
}

func (m *GradientBoosting) NumFeatures() int { return m.numFeatures }

func (m *GradientBoosting) Kind() string { return KindGradientBoosting }

func (m *GradientBoosting) Predict(x []float64) float64 {
	var sum float64
	for _, t := range m.trees {
		sum += t.eval(x)
	}
	return m.baseline + m.learningRate*sum
}
