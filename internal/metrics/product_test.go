package metrics

import (
	"testing"
	"time"

	"github.com/kanthai/launchpad/internal/models"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func task(mod func(*models.ProductTask)) models.ProductTask {
	t := models.ProductTask{
		ProductTaskID: "PT-x",
		ProductID:     "PRD-1",
		TaskName:      "Task",
		OwnerRole:     models.RoleOps,
		StartDate:     "2024-06-10",
		DueDate:       "2024-06-15",
		Status:        models.StatusNotStarted,
		Priority:      models.DefaultPriority,
	}
	if mod != nil {
		mod(&t)
	}
	return t
}

func TestWeightedCompletion(t *testing.T) {
	tests := []struct {
		name  string
		tasks []models.ProductTask
		want  int
	}{
		{"empty set", nil, 0},
		{
			"high done plus baseline open",
			[]models.ProductTask{
				task(func(t *models.ProductTask) { t.Priority = "High"; t.Status = models.StatusDone }),
				task(nil),
			},
			75, // 3 of 4 weight earned
		},
		{
			"all done",
			[]models.ProductTask{
				task(func(t *models.ProductTask) { t.Status = models.StatusDone }),
				task(func(t *models.ProductTask) { t.Priority = "Medium"; t.Status = models.StatusDone }),
			},
			100,
		},
		{
			"none done",
			[]models.ProductTask{task(nil), task(nil)},
			0,
		},
		{
			"medium counts double",
			[]models.ProductTask{
				task(func(t *models.ProductTask) { t.Priority = "Medium"; t.Status = models.StatusDone }),
				task(nil),
			},
			67, // 2 of 3, rounded
		},
		{
			"critical weighs three",
			[]models.ProductTask{
				task(func(t *models.ProductTask) { t.Priority = "Critical"; t.Status = models.StatusDone }),
				task(nil), task(nil), task(nil),
			},
			50, // 3 of 6
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeightedCompletion(tt.tasks); got != tt.want {
				t.Errorf("WeightedCompletion = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRiskScore_OverdueAndBlocked(t *testing.T) {
	// Three overdue critical tasks and one blocked task: 30 + 15 = 45.
	tasks := []models.ProductTask{
		task(func(t *models.ProductTask) { t.Priority = "High"; t.DueDate = "2024-05-20" }),
		task(func(t *models.ProductTask) { t.Priority = "Critical"; t.DueDate = "2024-05-21" }),
		task(func(t *models.ProductTask) { t.Priority = "High"; t.DueDate = "2024-05-22" }),
		task(func(t *models.ProductTask) { t.Status = models.StatusBlocked }),
	}
	score, drivers := riskScore(tasks, testNow)
	if score != 45 {
		t.Errorf("score = %d, want 45", score)
	}
	if RiskBand(score) != RiskMedium {
		t.Errorf("band = %q, want %q", RiskBand(score), RiskMedium)
	}
	if len(drivers) != 2 {
		t.Fatalf("drivers = %v, want 2 entries", drivers)
	}
	if drivers[0] != "3 Critical Tasks Overdue" {
		t.Errorf("drivers[0] = %q", drivers[0])
	}
	if drivers[1] != "1 Tasks Blocked" {
		t.Errorf("drivers[1] = %q", drivers[1])
	}
}

func TestRiskScore_CategoryCaps(t *testing.T) {
	var tasks []models.ProductTask
	// Ten overdue criticals cap at 40, four blocked cap at 30.
	for i := 0; i < 10; i++ {
		tasks = append(tasks, task(func(t *models.ProductTask) { t.Priority = "High"; t.DueDate = "2024-05-01" }))
	}
	for i := 0; i < 4; i++ {
		tasks = append(tasks, task(func(t *models.ProductTask) { t.Status = models.StatusBlocked }))
	}
	score, _ := riskScore(tasks, testNow)
	if score != 70 {
		t.Errorf("score = %d, want 70 (40 + 30)", score)
	}
}

func TestRiskScore_MilestoneFlatBonus(t *testing.T) {
	// Two overdue milestone tasks still add a single flat +20.
	tasks := []models.ProductTask{
		task(func(t *models.ProductTask) { t.TaskName = "Launch Milestone Review"; t.DueDate = "2024-05-01" }),
		task(func(t *models.ProductTask) { t.Phase = LaunchPhase; t.DueDate = "2024-05-02" }),
	}
	score, drivers := riskScore(tasks, testNow)
	if score != 20 {
		t.Errorf("score = %d, want 20", score)
	}
	found := false
	for _, d := range drivers {
		if d == "Milestone Missed" {
			found = true
		}
	}
	if !found {
		t.Errorf("drivers %v missing Milestone Missed", drivers)
	}
}

func TestRiskScore_DoneTasksAreNotOverdue(t *testing.T) {
	tasks := []models.ProductTask{
		task(func(t *models.ProductTask) { t.Priority = "High"; t.DueDate = "2024-05-01"; t.Status = models.StatusDone }),
		task(func(t *models.ProductTask) { t.Phase = LaunchPhase; t.DueDate = "2024-05-01"; t.Status = models.StatusDone }),
	}
	score, drivers := riskScore(tasks, testNow)
	if score != 0 {
		t.Errorf("score = %d, want 0; drivers %v", score, drivers)
	}
}

func TestRiskScore_Monotonic(t *testing.T) {
	prev := -1
	var tasks []models.ProductTask
	for i := 0; i < 12; i++ {
		tasks = append(tasks, task(func(t *models.ProductTask) { t.Priority = "Critical"; t.DueDate = "2024-05-01" }))
		tasks = append(tasks, task(func(t *models.ProductTask) { t.Status = models.StatusBlocked }))
		score, _ := riskScore(tasks, testNow)
		if score < prev {
			t.Fatalf("score decreased from %d to %d at %d tasks", prev, score, len(tasks))
		}
		if score > 100 {
			t.Fatalf("score %d exceeds 100", score)
		}
		prev = score
	}
}

func TestRiskBand_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, RiskLow},
		{29, RiskLow},
		{30, RiskMedium}, // lower bound inclusive
		{45, RiskMedium},
		{60, RiskMedium}, // lower bound inclusive
		{61, RiskHigh},
		{100, RiskHigh},
	}
	for _, tt := range tests {
		if got := RiskBand(tt.score); got != tt.want {
			t.Errorf("RiskBand(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestReadiness_OmitsEmptyFunctions(t *testing.T) {
	tasks := []models.ProductTask{
		task(func(t *models.ProductTask) { t.OwnerRole = models.RoleMarketing; t.Status = models.StatusDone }),
		task(func(t *models.ProductTask) { t.OwnerRole = models.RoleMarketing; t.Status = models.StatusDone }),
		task(func(t *models.ProductTask) { t.OwnerRole = models.RoleMarketing; t.Status = models.StatusDone }),
	}
	got := readiness(tasks)

	if len(got) != 1 {
		t.Fatalf("readiness = %v, want only Marketing", got)
	}
	if got[0].Name != "Marketing" || got[0].Pct != 100 || got[0].Done != 3 || got[0].Total != 3 {
		t.Errorf("Marketing readiness = %+v, want 3/3 at 100", got[0])
	}
	for _, fr := range got {
		if fr.Name == "Compliance" {
			t.Error("Compliance should be omitted when it has no tasks")
		}
	}
}

func TestReadiness_GroupsRolesIntoFunctions(t *testing.T) {
	tasks := []models.ProductTask{
		task(func(t *models.ProductTask) { t.OwnerRole = models.RoleOps; t.Status = models.StatusDone }),
		task(func(t *models.ProductTask) { t.OwnerRole = models.RolePM }),
		task(func(t *models.ProductTask) { t.OwnerRole = models.RoleFinance }),
	}
	got := readiness(tasks)

	byName := make(map[string]FunctionReadiness)
	for _, fr := range got {
		byName[fr.Name] = fr
	}
	ops := byName["Operations"]
	if ops.Total != 2 || ops.Done != 1 || ops.Pct != 50 {
		t.Errorf("Operations = %+v, want 1/2 at 50", ops)
	}
	comp := byName["Compliance"]
	if comp.Total != 1 || comp.Pct != 0 {
		t.Errorf("Compliance = %+v, want 0/1 at 0", comp)
	}
}

func TestComputeProductMetrics_Variance(t *testing.T) {
	product := models.Product{ProductID: "PRD-1", GoLiveDate: "2024-06-15"}
	tasks := []models.ProductTask{
		task(func(t *models.ProductTask) { t.DueDate = "2024-06-25" }),
		task(func(t *models.ProductTask) { t.DueDate = "2024-06-30"; t.Status = models.StatusDone }),
		task(func(t *models.ProductTask) { t.DueDate = "2024-06-10" }),
	}
	m := ComputeProductMetrics(product, tasks, testNow)

	// Forecast is the max open due date; the later Done task is excluded.
	if m.ForecastDate != "2024-06-25" {
		t.Errorf("ForecastDate = %s, want 2024-06-25", m.ForecastDate)
	}
	if m.ScheduleVarianceDays != 10 {
		t.Errorf("ScheduleVarianceDays = %d, want 10", m.ScheduleVarianceDays)
	}
	if !m.HasTargetDate {
		t.Error("HasTargetDate = false, want true")
	}
	if m.DaysToLaunch != 14 {
		t.Errorf("DaysToLaunch = %d, want 14", m.DaysToLaunch)
	}
}

func TestComputeProductMetrics_AheadOfSchedule(t *testing.T) {
	product := models.Product{ProductID: "PRD-1", GoLiveDate: "2024-06-15"}
	tasks := []models.ProductTask{
		task(func(t *models.ProductTask) { t.DueDate = "2024-06-10" }),
		task(func(t *models.ProductTask) { t.DueDate = "2024-06-05" }),
	}
	m := ComputeProductMetrics(product, tasks, testNow)

	// Open work that finishes before the target pulls the forecast forward.
	if m.ForecastDate != "2024-06-10" {
		t.Errorf("ForecastDate = %s, want 2024-06-10", m.ForecastDate)
	}
	if m.ScheduleVarianceDays != -5 {
		t.Errorf("ScheduleVarianceDays = %d, want -5", m.ScheduleVarianceDays)
	}
}

func TestComputeProductMetrics_VarianceFallsBackToTarget(t *testing.T) {
	product := models.Product{ProductID: "PRD-1", GoLiveDate: "2024-06-15"}
	tasks := []models.ProductTask{
		task(func(t *models.ProductTask) { t.DueDate = "2024-06-30"; t.Status = models.StatusDone }),
	}
	m := ComputeProductMetrics(product, tasks, testNow)

	if m.ForecastDate != "2024-06-15" {
		t.Errorf("ForecastDate = %s, want target 2024-06-15", m.ForecastDate)
	}
	if m.ScheduleVarianceDays != 0 {
		t.Errorf("ScheduleVarianceDays = %d, want 0", m.ScheduleVarianceDays)
	}
}

func TestComputeProductMetrics_NoTargetDate(t *testing.T) {
	product := models.Product{ProductID: "PRD-1"}
	m := ComputeProductMetrics(product, nil, testNow)

	if m.HasTargetDate {
		t.Error("HasTargetDate = true for product without go-live date")
	}
	if m.WeightedCompletion != 0 {
		t.Errorf("WeightedCompletion = %d, want 0", m.WeightedCompletion)
	}
	if m.RiskScore != 0 || m.RiskBand != RiskLow {
		t.Errorf("risk = %d %q, want 0 Low", m.RiskScore, m.RiskBand)
	}
	if len(m.RiskDrivers) != 0 {
		t.Errorf("RiskDrivers = %v, want empty", m.RiskDrivers)
	}
}
