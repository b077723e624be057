package notify

import (
	"fmt"
	"sort"
	"time"

	"github.com/kanthai/launchpad/internal/metrics"
	"github.com/kanthai/launchpad/internal/models"
	"github.com/kanthai/launchpad/internal/schedule"
	"github.com/kanthai/launchpad/internal/store"
	"gorm.io/gorm"
)

// TaskAlert is one task surfaced in a digest.
type TaskAlert struct {
	ProductName string
	TaskName    string
	OwnerEmail  string
	DueDate     string
	DaysOverdue int
	Reason      string // blocker reason, when blocked
}

// RiskAlert is one high-risk product surfaced in a digest.
type RiskAlert struct {
	ProductName string
	GoLiveDate  string
	RiskScore   int
	Drivers     []string
}

// Digest holds everything a daily launch digest reports on.
type Digest struct {
	Date         string
	Overdue      []TaskAlert
	Blocked      []TaskAlert
	HighRisk     []RiskAlert
	UpcomingSoon []string // "name (go-live date)" launching within 7 days
}

// BuildDigest assembles the daily digest from active products. Returns
// nil when there is nothing to report.
func BuildDigest(db *gorm.DB, now time.Time) (*Digest, error) {
	products, err := store.FindAll[models.Product](db)
	if err != nil {
		return nil, fmt.Errorf("notify: digest: %w", err)
	}
	tasks, err := store.FindAll[models.ProductTask](db)
	if err != nil {
		return nil, fmt.Errorf("notify: digest: %w", err)
	}

	names := make(map[string]string, len(products))
	active := make(map[string]bool, len(products))
	for _, p := range products {
		names[p.ProductID] = p.ProductName
		active[p.ProductID] = p.Status == models.ProductActive
	}

	d := &Digest{Date: schedule.FormatDate(now)}
	today := schedule.FormatDate(now)

	for _, pt := range tasks {
		if !active[pt.ProductID] {
			continue
		}
		open := pt.Status != models.StatusDone && pt.Status != models.StatusApproved
		if open && pt.DueDate != "" && pt.DueDate < today {
			overdueDays := 0
			if delta, err := schedule.DeltaDays(pt.DueDate, today); err == nil {
				overdueDays = delta
			}
			d.Overdue = append(d.Overdue, TaskAlert{
				ProductName: names[pt.ProductID],
				TaskName:    pt.TaskName,
				OwnerEmail:  pt.OwnerEmail,
				DueDate:     pt.DueDate,
				DaysOverdue: overdueDays,
			})
		}
		if pt.Status == models.StatusBlocked {
			d.Blocked = append(d.Blocked, TaskAlert{
				ProductName: names[pt.ProductID],
				TaskName:    pt.TaskName,
				OwnerEmail:  pt.OwnerEmail,
				DueDate:     pt.DueDate,
				Reason:      pt.BlockerReason,
			})
		}
	}

	byProduct := make(map[string][]models.ProductTask)
	for _, pt := range tasks {
		byProduct[pt.ProductID] = append(byProduct[pt.ProductID], pt)
	}
	weekOut := schedule.FormatDate(now.AddDate(0, 0, 7))
	for _, p := range products {
		if p.Status != models.ProductActive {
			continue
		}
		m := metrics.ComputeProductMetrics(p, byProduct[p.ProductID], now)
		if m.RiskBand == metrics.RiskHigh {
			d.HighRisk = append(d.HighRisk, RiskAlert{
				ProductName: p.ProductName,
				GoLiveDate:  p.GoLiveDate,
				RiskScore:   m.RiskScore,
				Drivers:     m.RiskDrivers,
			})
		}
		if p.GoLiveDate >= today && p.GoLiveDate <= weekOut {
			d.UpcomingSoon = append(d.UpcomingSoon, fmt.Sprintf("%s (%s)", p.ProductName, p.GoLiveDate))
		}
	}

	sort.Slice(d.Overdue, func(i, j int) bool { return d.Overdue[i].DaysOverdue > d.Overdue[j].DaysOverdue })
	sort.Slice(d.HighRisk, func(i, j int) bool { return d.HighRisk[i].RiskScore > d.HighRisk[j].RiskScore })

	// Suppress when there is nothing to say.
	if len(d.Overdue) == 0 && len(d.Blocked) == 0 && len(d.HighRisk) == 0 && len(d.UpcomingSoon) == 0 {
		return nil, nil
	}
	return d, nil
}
