// internal/lifecycle/metrics.go
package lifecycle

import (
	"math"
	"time"
)

// Efficiency is a coarse label for elapsed time.
type Efficiency string

const (
	EfficiencyExcellent Efficiency = "excellent"
	EfficiencyGood      Efficiency = "good"
	EfficiencyAverage   Efficiency = "average"
	EfficiencySlow      Efficiency = "slow"
)

const day = 24 * time.Hour

// StageMetric is one row of the computed timeline.
type StageMetric struct {
	StageID     StageID    `json:"stageId"`
	Name        string     `json:"name"`
	Position    int        `json:"position"`
	Date        time.Time  `json:"date"`
	DaysInStage int        `json:"daysInStage"`
	Efficiency  Efficiency `json:"efficiency"`
}

// DaysBetween is ceil((to-from)/1 day). Negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(math.Ceil(float64(to.Sub(from)) / float64(day)))
}

// ComputeStageMetrics measures each stage up to the next event; the last stage is
// still open and is measured up to now.
func ComputeStageMetrics(events []StageEvent, now time.Time) []StageMetric {
	metrics := make([]StageMetric, 0, len(events))
	for i, ev := range events {
		end := now
		if i+1 < len(events) {
			end = events[i+1].Date
		}
		days := DaysBetween(ev.Date, end)
		metrics = append(metrics, StageMetric{
			StageID:     ev.Stage.ID,
			Name:        ev.Stage.Name,
			Position:    ev.Stage.Position,
			Date:        ev.Date,
			DaysInStage: days,
			Efficiency:  ClassifyStageEfficiency(days),
		})
	}
	return metrics
}

// TotalDays spans the first to the last event; 0 with fewer than two events.
func TotalDays(events []StageEvent) int {
	if len(events) < 2 {
		return 0
	}
	return DaysBetween(events[0].Date, events[len(events)-1].Date)
}

func ClassifyStageEfficiency(days int) Efficiency {
	switch {
	case days <= 3:
		return EfficiencyExcellent
	case days <= 7:
		return EfficiencyGood
	case days <= 14:
		return EfficiencyAverage
	default:
		return EfficiencySlow
	}
}

// ClassifyOverallEfficiency uses its own thresholds; they are not the per-stage ones scaled.
func ClassifyOverallEfficiency(totalDays int) Efficiency {
	switch {
	case totalDays <= 21:
		return EfficiencyExcellent
	case totalDays <= 45:
		return EfficiencyGood
	case totalDays <= 90:
		return EfficiencyAverage
	default:
		return EfficiencySlow
	}
}

// AverageStageTime is the mean of DaysInStage rounded half up, 0 when empty.
func AverageStageTime(metrics []StageMetric) int {
	if len(metrics) == 0 {
		return 0
	}
	sum := 0
	for _, m := range metrics {
		sum += m.DaysInStage
	}
	return roundHalfUp(float64(sum) / float64(len(metrics)))
}

// FastestStage returns the stage with the fewest days. Ties go to the earliest stage.
func FastestStage(metrics []StageMetric) *StageMetric {
	if len(metrics) == 0 {
		return nil
	}
	best := metrics[0]
	for _, m := range metrics[1:] {
		if m.DaysInStage < best.DaysInStage {
			best = m
		}
	}
	return &best
}

// SlowestStage returns the stage with the most days. Ties go to the earliest stage.
func SlowestStage(metrics []StageMetric) *StageMetric {
	if len(metrics) == 0 {
		return nil
	}
	worst := metrics[0]
	for _, m := range metrics[1:] {
		if m.DaysInStage > worst.DaysInStage {
			worst = m
		}
	}
	return &worst
}

// CompletionRate is the share of the 7 stages with a timestamp, as a percentage.
func CompletionRate(eventCount int) float64 {
	return float64(eventCount) / float64(StageCount) * 100
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
