package metrics

import (
	"math"
	"strings"
	"time"

	"github.com/kanthai/launchpad/internal/models"
	"github.com/kanthai/launchpad/internal/schedule"
)

// unassigned is the workload bucket for tasks without an owner.
const unassigned = "Unassigned"

// PortfolioMetrics is the derived cross-product dashboard view.
type PortfolioMetrics struct {
	TotalProducts     int      `json:"total_products"`
	ActiveProducts    int      `json:"active_products"`
	OnTimeForecastPct int      `json:"on_time_forecast_pct"`
	BlockedProducts   []string `json:"blocked_products"`
	AtRiskProducts    []string `json:"at_risk_products"`

	CompletedTasks7d  int `json:"completed_tasks_7d"`
	CompletedTasks14d int `json:"completed_tasks_14d"`
	OpenTasks         int `json:"open_tasks"`
	OverdueTasks      int `json:"overdue_tasks"`
	OverdueRatePct    int `json:"overdue_rate_pct"`

	OpenByRole     map[string]int `json:"open_by_role"`
	OpenByAssignee map[string]int `json:"open_by_assignee"`
	ReviewByRole   map[string]int `json:"review_by_role"`

	LaunchesByMonth         map[string]int `json:"launches_by_month"`
	AvgLaunchDaysByCategory map[string]int `json:"avg_launch_days_by_category"`
}

// isOpenTask reports whether a task still needs work. Approved tasks are
// considered closed for workload purposes even though they are not Done.
func isOpenTask(task models.ProductTask) bool {
	return task.Status != models.StatusDone && task.Status != models.StatusApproved
}

// assigneeName extracts a short display name from an owner email.
func assigneeName(email string) string {
	if email == "" {
		return unassigned
	}
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

// ComputePortfolioMetrics derives the cross-product dashboard view from
// the full product and task sets. Like the per-product metrics it is pure:
// recomputed on every read, never persisted.
func ComputePortfolioMetrics(products []models.Product, tasks []models.ProductTask, now time.Time) PortfolioMetrics {
	m := PortfolioMetrics{
		TotalProducts:           len(products),
		BlockedProducts:         []string{},
		AtRiskProducts:          []string{},
		OpenByRole:              map[string]int{},
		OpenByAssignee:          map[string]int{},
		ReviewByRole:            map[string]int{},
		LaunchesByMonth:         map[string]int{},
		AvgLaunchDaysByCategory: map[string]int{},
	}

	tasksByProduct := make(map[string][]models.ProductTask)
	for _, task := range tasks {
		tasksByProduct[task.ProductID] = append(tasksByProduct[task.ProductID], task)
	}

	onTime := 0
	launchDaysByCategory := map[string][]int{}
	for _, p := range products {
		if p.LaunchMonth != "" {
			m.LaunchesByMonth[p.LaunchMonth]++
		}

		if p.Status == models.ProductLaunched {
			// CreatedAt→UpdatedAt spans creation to the launch status flip.
			days := int(p.UpdatedAt.Sub(p.CreatedAt).Hours() / 24)
			cat := p.Category
			if cat == "" {
				cat = "Uncategorized"
			}
			launchDaysByCategory[cat] = append(launchDaysByCategory[cat], days)
		}

		if p.Status != models.ProductActive {
			continue
		}
		m.ActiveProducts++
		pTasks := tasksByProduct[p.ProductID]

		if onTimeForecast(p, pTasks) {
			onTime++
		}

		isBlocked := false
		severeOverdue := false
		for _, task := range pTasks {
			if task.Status == models.StatusBlocked {
				isBlocked = true
			}
			if task.Status != models.StatusDone {
				if due, err := schedule.ParseDate(task.DueDate); err == nil {
					if now.Sub(due).Hours()/24 > 3 {
						severeOverdue = true
					}
				}
			}
		}
		if isBlocked {
			m.BlockedProducts = append(m.BlockedProducts, p.ProductID)
		}
		if isBlocked || severeOverdue {
			m.AtRiskProducts = append(m.AtRiskProducts, p.ProductID)
		}
	}

	if m.ActiveProducts > 0 {
		m.OnTimeForecastPct = int(math.Round(float64(onTime) / float64(m.ActiveProducts) * 100))
	} else {
		m.OnTimeForecastPct = 100
	}

	sevenDaysAgo := now.AddDate(0, 0, -7)
	fourteenDaysAgo := now.AddDate(0, 0, -14)
	for _, task := range tasks {
		if task.Status == models.StatusDone {
			if !task.UpdatedAt.Before(sevenDaysAgo) {
				m.CompletedTasks7d++
			}
			if !task.UpdatedAt.Before(fourteenDaysAgo) {
				m.CompletedTasks14d++
			}
		}

		if task.Status == models.StatusReview {
			role := task.OwnerRole
			if role == "" {
				role = unassigned
			}
			m.ReviewByRole[role]++
		}

		if !isOpenTask(task) {
			continue
		}
		m.OpenTasks++
		if isOverdue(task, now) {
			m.OverdueTasks++
		}

		role := task.OwnerRole
		if role == "" {
			role = unassigned
		}
		m.OpenByRole[role]++
		m.OpenByAssignee[assigneeName(task.OwnerEmail)]++
	}
	if m.OpenTasks > 0 {
		m.OverdueRatePct = int(math.Round(float64(m.OverdueTasks) / float64(m.OpenTasks) * 100))
	}

	for cat, days := range launchDaysByCategory {
		sum := 0
		for _, d := range days {
			sum += d
		}
		m.AvgLaunchDaysByCategory[cat] = int(math.Round(float64(sum) / float64(len(days))))
	}

	return m
}

// onTimeForecast reports whether an active product still looks on time: a
// product with no target, or whose launch-phase task due date does not
// overrun the target, is counted as on time.
func onTimeForecast(p models.Product, tasks []models.ProductTask) bool {
	target, err := schedule.ParseDate(p.GoLiveDate)
	if err != nil {
		return true
	}
	for _, task := range tasks {
		if task.Phase != LaunchPhase {
			continue
		}
		due, err := schedule.ParseDate(task.DueDate)
		if err != nil {
			continue
		}
		if due.After(target) {
			return false
		}
	}
	return true
}
