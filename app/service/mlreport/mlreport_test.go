package mlreport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTATReportShape(t *testing.T) {
	s := &Service{}
	report := s.TAT()

	assert.Equal(t, "linear_regression", report.Model)
	assert.Positive(t, report.Slope)
	assert.Greater(t, report.R2, 0.9)

	require.Len(t, report.Predictions, 3)
	assert.Equal(t, 0.50, report.Predictions[0].Load)
	assert.Equal(t, 0.75, report.Predictions[1].Load)
	assert.Equal(t, 0.95, report.Predictions[2].Load)

	// Heavier load always predicts a longer turnaround.
	assert.Less(t, report.Predictions[0].Minutes, report.Predictions[1].Minutes)
	assert.Less(t, report.Predictions[1].Minutes, report.Predictions[2].Minutes)

	for _, p := range report.Predictions {
		scaled := p.Minutes * 10
		assert.InDelta(t, math.Round(scaled), scaled, 1e-9, "prediction %v is not one-decimal", p.Minutes)
	}
}

func TestTATReportIsDeterministic(t *testing.T) {
	s := &Service{}
	assert.Equal(t, s.TAT(), s.TAT())
}

func TestDelayClassifierReport(t *testing.T) {
	s := &Service{}
	report := s.DelayClassifier()

	assert.Equal(t, "random_forest", report.Model)
	assert.Equal(t, 0.92, report.Accuracy)
	require.Len(t, report.Importances, 4)

	total := 0.0
	previous := math.Inf(1)
	for _, fi := range report.Importances {
		total += fi.Importance
		assert.LessOrEqual(t, fi.Importance, previous)
		assert.InDelta(t, fi.Importance*100, fi.Percent, 1e-9)
		previous = fi.Importance
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestLeastSquaresKnownLine(t *testing.T) {
	slope, intercept := leastSquares(
		[]float64{1, 2, 3},
		[]float64{5, 7, 9},
	)
	assert.InDelta(t, 2.0, slope, 1e-9)
	assert.InDelta(t, 3.0, intercept, 1e-9)
}
