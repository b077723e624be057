// Package metrics derives read-only launch metrics from products and
// their task sets. Nothing here mutates state; every value is recomputed
// on each call.
package metrics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kanthai/launchpad/internal/models"
	"github.com/kanthai/launchpad/internal/schedule"
)

// LaunchPhase is the phase whose tasks count as launch milestones.
const LaunchPhase = "Launch"

// Risk scoring constants. Each category is capped independently before the
// overall cap is applied.
const (
	overduePoints   = 10
	overdueCap      = 40
	blockedPoints   = 15
	blockedCap      = 30
	milestonePoints = 20
	riskCap         = 100
)

// Risk bands. Band boundaries include their lower bound: a score of
// exactly 30 or exactly 60 is Medium.
const (
	RiskLow    = "Low Risk"
	RiskMedium = "Medium Risk"
	RiskHigh   = "High Risk"
)

// FunctionReadiness is the completion rate for one functional area.
// Functions with no tasks are omitted from results entirely.
type FunctionReadiness struct {
	Name  string `json:"name"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
	Pct   int    `json:"pct"`
}

// ProductMetrics is the derived dashboard view for a single product.
type ProductMetrics struct {
	WeightedCompletion   int                 `json:"weighted_completion"`
	HasTargetDate        bool                `json:"has_target_date"`
	DaysToLaunch         int                 `json:"days_to_launch"`
	ForecastDate         string              `json:"forecast_date"`
	ScheduleVarianceDays int                 `json:"schedule_variance_days"`
	RiskScore            int                 `json:"risk_score"`
	RiskBand             string              `json:"risk_band"`
	RiskDrivers          []string            `json:"risk_drivers"`
	Readiness            []FunctionReadiness `json:"readiness"`
}

// taskWeight returns the completion weight for a task's priority.
func taskWeight(priority string) int {
	switch priority {
	case "High", "Critical":
		return 3
	case "Medium":
		return 2
	default:
		return 1
	}
}

// isOverdue reports whether a task's due date has passed and the task is
// not done. Tasks with missing or unparseable due dates are never overdue.
func isOverdue(task models.ProductTask, now time.Time) bool {
	if task.Status == models.StatusDone {
		return false
	}
	due, err := schedule.ParseDate(task.DueDate)
	if err != nil {
		return false
	}
	return due.Before(now)
}

// isMilestone reports whether a task counts as a launch milestone: its
// name mentions "milestone" or it belongs to the launch phase.
func isMilestone(task models.ProductTask) bool {
	return strings.Contains(strings.ToLower(task.TaskName), "milestone") || task.Phase == LaunchPhase
}

// WeightedCompletion returns the priority-weighted completion percentage,
// or 0 for an empty task set.
func WeightedCompletion(tasks []models.ProductTask) int {
	total, earned := 0, 0
	for _, task := range tasks {
		w := taskWeight(task.Priority)
		total += w
		if task.Status == models.StatusDone {
			earned += w
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(earned) / float64(total) * 100))
}

// RiskBand buckets a risk score. Boundaries include their lower bound.
func RiskBand(score int) string {
	switch {
	case score < 30:
		return RiskLow
	case score <= 60:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// riskScore computes the bounded additive risk score and its drivers.
func riskScore(tasks []models.ProductTask, now time.Time) (int, []string) {
	score := 0
	drivers := []string{}

	overdueCritical := 0
	blocked := 0
	milestoneMissed := false
	for _, task := range tasks {
		if taskWeight(task.Priority) == 3 && isOverdue(task, now) {
			overdueCritical++
		}
		if task.Status == models.StatusBlocked {
			blocked++
		}
		if isMilestone(task) && isOverdue(task, now) {
			milestoneMissed = true
		}
	}

	if overdueCritical > 0 {
		score += min(overdueCritical*overduePoints, overdueCap)
		drivers = append(drivers, fmt.Sprintf("%d Critical Tasks Overdue", overdueCritical))
	}
	if blocked > 0 {
		score += min(blocked*blockedPoints, blockedCap)
		drivers = append(drivers, fmt.Sprintf("%d Tasks Blocked", blocked))
	}
	if milestoneMissed {
		score += milestonePoints
		drivers = append(drivers, "Milestone Missed")
	}

	return min(score, riskCap), drivers
}

// readiness groups tasks by functional area and returns each area's
// completion rate, omitting areas with no tasks.
func readiness(tasks []models.ProductTask) []FunctionReadiness {
	out := []FunctionReadiness{}
	for _, fg := range FunctionGroups {
		inGroup := func(role string) bool {
			for _, r := range fg.Roles {
				if r == role {
					return true
				}
			}
			return false
		}

		done, total := 0, 0
		for _, task := range tasks {
			if !inGroup(task.OwnerRole) {
				continue
			}
			total++
			if task.Status == models.StatusDone {
				done++
			}
		}
		if total == 0 {
			continue
		}
		out = append(out, FunctionReadiness{
			Name:  fg.Name,
			Done:  done,
			Total: total,
			Pct:   int(math.Round(float64(done) / float64(total) * 100)),
		})
	}
	return out
}

// ComputeProductMetrics derives the full dashboard view for one product.
// The forecast date is the latest due date among open tasks, falling back
// to the product's target when every task is done; positive variance means
// forecast slip past the target, negative means the open work finishes
// ahead of it.
func ComputeProductMetrics(product models.Product, tasks []models.ProductTask, now time.Time) ProductMetrics {
	m := ProductMetrics{
		WeightedCompletion: WeightedCompletion(tasks),
		Readiness:          readiness(tasks),
	}

	target, err := schedule.ParseDate(product.GoLiveDate)
	if err == nil {
		m.HasTargetDate = true
		m.DaysToLaunch = int(math.Ceil(target.Sub(now).Hours() / 24))

		var maxDue time.Time
		for _, task := range tasks {
			if task.Status == models.StatusDone {
				continue
			}
			due, err := schedule.ParseDate(task.DueDate)
			if err != nil {
				continue
			}
			if maxDue.IsZero() || due.After(maxDue) {
				maxDue = due
			}
		}
		forecast := target
		if !maxDue.IsZero() {
			forecast = maxDue
		}
		m.ForecastDate = schedule.FormatDate(forecast)
		m.ScheduleVarianceDays = int(math.Ceil(forecast.Sub(target).Hours() / 24))
	}

	m.RiskScore, m.RiskDrivers = riskScore(tasks, now)
	m.RiskBand = RiskBand(m.RiskScore)
	return m
}
