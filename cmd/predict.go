package cmd

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/profitalyze/profit-predict/pipeline"
)

// runPredict is the whole load → parse → predict → print chain. The artifact
// is loaded before the arguments are looked at, so a broken artifact is
// reported even when the argument is also wrong. Nothing is written to w
// unless a prediction succeeds.
func runPredict(w io.Writer, artifactPath string, args []string) error {
	p, err := pipeline.Load(artifactPath)
	if err != nil {
		return err
	}

	if len(args) != 1 {
		return fmt.Errorf("%w: expected exactly one JSON object argument, got %d", pipeline.ErrArgument, len(args))
	}
	frame, err := pipeline.ParseRecord(args[0])
	if err != nil {
		return err
	}
	logrus.Debugf("input columns: %v", frame.Columns())

	preds, err := p.Predict(frame)
	if err != nil {
		return err
	}
	if len(preds) != 1 {
		return fmt.Errorf("expected 1 prediction, got %d", len(preds))
	}
	logrus.Infof("%s prediction: %v", p.Target(), preds[0])

	_, err = fmt.Fprintln(w, FormatPrediction(preds[0]))
	return err
}

// FormatPrediction renders a prediction as the shortest decimal that parses
// back to the same float64. Integral values keep a trailing ".0", and
// magnitudes below 1e-4 or from 1e16 up use exponent form ("1e+16").
func FormatPrediction(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
