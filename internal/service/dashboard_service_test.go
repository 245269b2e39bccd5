package service

import (
	"math"
	"testing"
)

func TestImprovementRate_RequiresFourScores(t *testing.T) {
	if rate := ImprovementRate([]float64{50, 60, 70}); rate != nil {
		t.Errorf("expected nil rate with 3 completed sessions, got %f", *rate)
	}
	if rate := ImprovementRate(nil); rate != nil {
		t.Errorf("expected nil rate with no sessions, got %f", *rate)
	}
}

func TestImprovementRate_FourSessions(t *testing.T) {
	rate := ImprovementRate([]float64{50, 60, 70, 90})
	if rate == nil {
		t.Fatal("expected a rate with 4 completed sessions")
	}
	// first half [50,60] mean 55; second half [70,90] mean 80.
	expected := (80.0 - 55.0) / 55.0 * 100
	if math.Abs(*rate-expected) > 1e-9 {
		t.Errorf("expected rate %f, got %f", expected, *rate)
	}
}

func TestImprovementRate_OddCountGivesEarlierHalfTheExtra(t *testing.T) {
	// 5 sessions: earlier half [40,50,60] mean 50, later half [70,80] mean 75.
	rate := ImprovementRate([]float64{40, 50, 60, 70, 80})
	if rate == nil {
		t.Fatal("expected a rate with 5 completed sessions")
	}
	expected := (75.0 - 50.0) / 50.0 * 100
	if math.Abs(*rate-expected) > 1e-9 {
		t.Errorf("expected rate %f, got %f", expected, *rate)
	}
}

func TestImprovementRate_ZeroFirstHalfMean(t *testing.T) {
	rate := ImprovementRate([]float64{0, 0, 50, 60})
	if rate == nil {
		t.Fatal("expected a rate")
	}
	if *rate != 0 {
		t.Errorf("expected rate 0 when the first-half mean is 0, got %f", *rate)
	}
}
