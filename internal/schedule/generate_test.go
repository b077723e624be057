package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/kanthai/launchpad/internal/catalog"
	"github.com/kanthai/launchpad/internal/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestNewTaskID_Format(t *testing.T) {
	id := NewTaskID()
	if !strings.HasPrefix(id, "PT-") {
		t.Errorf("ID %q missing PT- prefix", id)
	}
	if len(id) != 11 {
		t.Errorf("ID length = %d, want 11; id = %q", len(id), id)
	}
}

func TestNewTaskID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTaskID()
		if seen[id] {
			t.Fatalf("duplicate ID %q on iteration %d", id, i)
		}
		seen[id] = true
	}
}

func TestGenerate_OffsetAndDuration(t *testing.T) {
	defs := []models.TemplateTask{
		{TemplateID: "TMP-X", TaskCode: "T1", TaskName: "Sample Order", Phase: "Prep",
			DefaultOwnerRole: models.RoleOps, OffsetDays: -40, DurationDays: 5, InputType: "file"},
	}
	tasks := Generate(defs, "PRD-1", mustDate(t, "2024-06-15"), nil)

	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].StartDate != "2024-05-06" {
		t.Errorf("StartDate = %s, want 2024-05-06", tasks[0].StartDate)
	}
	if tasks[0].DueDate != "2024-05-11" {
		t.Errorf("DueDate = %s, want 2024-05-11", tasks[0].DueDate)
	}
}

func TestGenerate_OneTaskPerDefinition(t *testing.T) {
	tpl, err := catalog.Lookup(catalog.GeneralTemplateID)
	if err != nil {
		t.Fatal(err)
	}
	tasks := Generate(tpl.Tasks, "PRD-1", mustDate(t, "2024-06-15"), nil)
	if len(tasks) != len(tpl.Tasks) {
		t.Errorf("got %d tasks, want %d (one per definition)", len(tasks), len(tpl.Tasks))
	}
}

func TestGenerate_EmptyTemplate(t *testing.T) {
	tasks := Generate(nil, "PRD-1", mustDate(t, "2024-06-15"), nil)
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want 0", len(tasks))
	}
}

func TestGenerate_DueNeverBeforeStart(t *testing.T) {
	tpl, err := catalog.Lookup(catalog.GeneralTemplateID)
	if err != nil {
		t.Fatal(err)
	}
	tasks := Generate(tpl.Tasks, "PRD-1", mustDate(t, "2024-06-15"), nil)
	for _, task := range tasks {
		if task.DueDate < task.StartDate {
			t.Errorf("%s: due %s before start %s", task.TaskCode, task.DueDate, task.StartDate)
		}
	}
}

func TestGenerate_SpanEqualsDuration(t *testing.T) {
	tpl, err := catalog.Lookup(catalog.GeneralTemplateID)
	if err != nil {
		t.Fatal(err)
	}
	byCode := make(map[string]models.TemplateTask)
	for _, def := range tpl.Tasks {
		byCode[def.TaskCode] = def
	}

	tasks := Generate(tpl.Tasks, "PRD-1", mustDate(t, "2024-06-15"), nil)
	for _, task := range tasks {
		start := mustDate(t, task.StartDate)
		due := mustDate(t, task.DueDate)
		span := int(due.Sub(start).Hours() / 24)
		if want := byCode[task.TaskCode].DurationDays; span != want {
			t.Errorf("%s: span = %d days, want %d", task.TaskCode, span, want)
		}
	}
}

func TestGenerate_OwnerResolution(t *testing.T) {
	defs := []models.TemplateTask{
		{TaskCode: "A", TaskName: "a", DefaultOwnerRole: models.RoleOps},
		{TaskCode: "B", TaskName: "b", DefaultOwnerRole: models.RoleOps},
		{TaskCode: "C", TaskName: "c", DefaultOwnerRole: models.RoleFinance},
	}
	assignments := map[string]string{models.RoleOps: "ops@example.com"}
	tasks := Generate(defs, "PRD-1", mustDate(t, "2024-06-15"), assignments)

	// Two definitions sharing a role resolve independently to the same owner.
	if tasks[0].OwnerEmail != "ops@example.com" || tasks[1].OwnerEmail != "ops@example.com" {
		t.Errorf("Ops tasks owners = %q, %q, want ops@example.com for both",
			tasks[0].OwnerEmail, tasks[1].OwnerEmail)
	}
	// Missing assignment is not an error: owner stays empty.
	if tasks[2].OwnerEmail != "" {
		t.Errorf("Finance task owner = %q, want empty", tasks[2].OwnerEmail)
	}
}

func TestGenerate_InitialFields(t *testing.T) {
	defs := []models.TemplateTask{
		{TaskCode: "T1", TaskName: "Label", Phase: "Artwork",
			DefaultOwnerRole: models.RoleMarketing, DependsOn: "GHOST", InputType: "file"},
	}
	// A dangling depends_on is accepted without validation.
	tasks := Generate(defs, "PRD-9", mustDate(t, "2024-06-15"), nil)

	task := tasks[0]
	if task.ProductID != "PRD-9" {
		t.Errorf("ProductID = %q, want PRD-9", task.ProductID)
	}
	if task.Status != models.StatusNotStarted {
		t.Errorf("Status = %q, want NotStarted", task.Status)
	}
	if task.Priority != models.DefaultPriority {
		t.Errorf("Priority = %q, want %q", task.Priority, models.DefaultPriority)
	}
	if task.Notes != "" || task.BlockerReason != "" {
		t.Errorf("Notes/BlockerReason = %q/%q, want empty", task.Notes, task.BlockerReason)
	}
	if task.InputType != "file" {
		t.Errorf("InputType = %q, want file", task.InputType)
	}
	if !strings.HasPrefix(task.ProductTaskID, "PT-") {
		t.Errorf("ProductTaskID = %q, want PT- prefix", task.ProductTaskID)
	}
}

func TestGenerate_OrderIndependent(t *testing.T) {
	tpl, err := catalog.Lookup(catalog.GeneralTemplateID)
	if err != nil {
		t.Fatal(err)
	}
	reversed := make([]models.TemplateTask, len(tpl.Tasks))
	for i, def := range tpl.Tasks {
		reversed[len(tpl.Tasks)-1-i] = def
	}

	goLive := mustDate(t, "2024-06-15")
	forward := Generate(tpl.Tasks, "PRD-1", goLive, nil)
	backward := Generate(reversed, "PRD-1", goLive, nil)

	datesByCode := func(tasks []models.ProductTask) map[string][2]string {
		m := make(map[string][2]string)
		for _, task := range tasks {
			m[task.TaskCode] = [2]string{task.StartDate, task.DueDate}
		}
		return m
	}
	f, b := datesByCode(forward), datesByCode(backward)
	for code, dates := range f {
		if b[code] != dates {
			t.Errorf("%s: dates differ by iteration order: %v vs %v", code, dates, b[code])
		}
	}
}
