package pipeline

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitalyze/profit-predict/internal/testutil"
)

func loadTestdata(t *testing.T, name string) *Pipeline {
	t.Helper()
	p, err := Load(testutil.TestdataPath(t, name))
	require.NoError(t, err)
	return p
}

func predictOne(t *testing.T, p *Pipeline, record string) (float64, error) {
	t.Helper()
	f, err := ParseRecord(record)
	require.NoError(t, err)
	preds, err := p.Predict(f)
	if err != nil {
		return 0, err
	}
	require.Len(t, preds, 1)
	return preds[0], nil
}

func TestPredict_CostMarkupExample(t *testing.T) {
	// GIVEN an artifact fitted on {cost, markup, quantity}
	p := loadTestdata(t, "cost_markup_linear.yaml")

	// WHEN the matching record is predicted
	got, err := predictOne(t, p, `{"cost": 10.0, "markup": 0.2, "quantity": 5}`)

	// THEN the single prediction is 12
	require.NoError(t, err)
	assert.Equal(t, 12.0, got)
}

func TestPredict_ColumnOrderDoesNotMatter(t *testing.T) {
	p := loadTestdata(t, "cost_markup_linear.yaml")

	a, err := predictOne(t, p, `{"cost": 10.0, "markup": 0.2, "quantity": 5}`)
	require.NoError(t, err)
	b, err := predictOne(t, p, `{"quantity": 5, "markup": 0.2, "cost": 10.0}`)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestPredict_GradientBoosting(t *testing.T) {
	p := loadTestdata(t, "cost_markup_boosting.yaml")

	tests := []struct {
		record string
		want   float64
	}{
		// cost scales to 0.5 (left, -2); quantity 5 > 3, markup scales to 0.4 (2): 10 + 0.5*0
		{`{"cost": 10, "markup": 0.2, "quantity": 5}`, 10.0},
		// cost scales to 1.0 (right, 4); quantity 2 <= 3 (1): 10 + 0.5*5
		{`{"cost": 20, "markup": 0.5, "quantity": 2}`, 12.5},
		// cost 0 (left, -2); quantity 4 > 3, markup scales to 1.0 (6): 10 + 0.5*4
		{`{"cost": 0, "markup": 0.5, "quantity": 4}`, 12.0},
	}
	for _, tc := range tests {
		got, err := predictOne(t, p, tc.record)
		require.NoError(t, err, tc.record)
		assert.InDelta(t, tc.want, got, 1e-12, tc.record)
	}
}

func TestPredict_SchemaMismatch(t *testing.T) {
	p := loadTestdata(t, "cost_markup_linear.yaml")

	tests := []struct {
		name    string
		record  string
		wantMsg string
	}{
		{"missing feature", `{"cost": 10.0, "markup": 0.2}`, "columns are missing: [quantity]"},
		{"extra feature", `{"cost": 10.0, "markup": 0.2, "quantity": 5, "brand": "Nike"}`, "not seen at fit time: [brand]"},
		{"string for number", `{"cost": "ten", "markup": 0.2, "quantity": 5}`, `column "cost" expects a number, got string`},
		{"null for number", `{"cost": null, "markup": 0.2, "quantity": 5}`, "got null"},
		{"nested value", `{"cost": [10], "markup": 0.2, "quantity": 5}`, "got composite"},
		{"infinite", `{"cost": 1e400, "markup": 0.2, "quantity": 5}`, "not finite"},
		{"empty record", `{}`, "columns are missing"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := predictOne(t, p, tc.record)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSchemaMismatch), "want ErrSchemaMismatch, got %v", err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestPredict_BoolCountsAsNumber(t *testing.T) {
	p := loadTestdata(t, "cost_markup_linear.yaml")

	got, err := predictOne(t, p, `{"cost": true, "markup": false, "quantity": 5}`)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func oneHotPipeline(t *testing.T, handleUnknown string) *Pipeline {
	t.Helper()
	p, err := New(ArtifactSpec{
		Version:  ArtifactVersion,
		Features: []FeatureSpec{{Name: "brand", Type: FeatureCategorical}, {Name: "category_id", Type: FeatureCategorical}},
		Steps: []StepSpec{{
			Kind:          StepOneHot,
			Columns:       []string{"brand", "category_id"},
			Categories:    [][]string{{"Apple", "Nike"}, {"2", "8"}},
			HandleUnknown: handleUnknown,
		}},
		Estimator: EstimatorSpec{Kind: "linear", Intercept: 100, Coefficients: []float64{1, 2, 10, 20}},
	})
	require.NoError(t, err)
	return p
}

func TestPredict_OneHot(t *testing.T) {
	p := oneHotPipeline(t, "")

	got, err := predictOne(t, p, `{"brand": "Nike", "category_id": 8}`)
	require.NoError(t, err)
	assert.Equal(t, 122.0, got)

	// Numeric categories match their shortest decimal text.
	got, err = predictOne(t, p, `{"brand": "Apple", "category_id": 2.0}`)
	require.NoError(t, err)
	assert.Equal(t, 111.0, got)

	// Unknown levels encode as all zeros by default.
	got, err = predictOne(t, p, `{"brand": "Acme", "category_id": 9}`)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)
}

func TestPredict_OneHot_UnknownIsErrorWhenConfigured(t *testing.T) {
	p := oneHotPipeline(t, "error")

	_, err := predictOne(t, p, `{"brand": "Acme", "category_id": 8}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaMismatch))
	assert.Contains(t, err.Error(), `unknown category "Acme"`)
}

func TestPredict_OneHot_RejectsBool(t *testing.T) {
	p := oneHotPipeline(t, "")

	_, err := predictOne(t, p, `{"brand": true, "category_id": 8}`)
	assert.True(t, errors.Is(err, ErrSchemaMismatch))
}

func TestPredict_MultiRowFrame(t *testing.T) {
	p := loadTestdata(t, "cost_markup_linear.yaml")
	f, err := NewFrame([]string{"cost", "markup", "quantity"}, [][]Value{
		{Number(10), Number(0.2), Number(5)},
		{Number(1), Number(1), Number(1)},
	})
	require.NoError(t, err)

	preds, err := p.Predict(f)
	require.NoError(t, err)
	assert.Equal(t, []float64{12, 11}, preds)
}

func TestPredict_Deterministic(t *testing.T) {
	// GIVEN the same artifact loaded twice and the same record
	record := `{"cost": 10.0, "markup": 0.2, "quantity": 5}`
	first, err := predictOne(t, loadTestdata(t, "cost_markup_boosting.yaml"), record)
	require.NoError(t, err)
	second, err := predictOne(t, loadTestdata(t, "cost_markup_boosting.yaml"), record)
	require.NoError(t, err)

	// THEN the predictions are bit-identical
	assert.Equal(t, first, second)
}

func TestPredict_ConcurrentCallsShareOnePipeline(t *testing.T) {
	p := loadTestdata(t, "cost_markup_linear.yaml")
	f, err := ParseRecord(`{"cost": 10.0, "markup": 0.2, "quantity": 5}`)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]float64, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			preds, err := p.Predict(f)
			if err == nil {
				results[i] = preds[0]
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, 12.0, r)
	}
}

func TestPredict_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	p, err := Load(dataset.Artifact)
	require.NoError(t, err)

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := predictOne(t, p, string(tc.Input))
			require.NoError(t, err)
			testutil.AssertFloat64Equal(t, "prediction", tc.Prediction, got, 1e-9)
		})
	}
}
