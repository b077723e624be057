// Package catalog holds the built-in task template registry. Templates are
// edited out-of-band and compiled in; there is no runtime mutation path.
package catalog

import (
	"errors"
	"fmt"

	"github.com/kanthai/launchpad/internal/models"
)

// ErrTemplateNotFound is returned when a template id has no definitions.
var ErrTemplateNotFound = errors.New("template not found")

// GeneralTemplateID is the default launch checklist template.
const GeneralTemplateID = "TMP-GENERAL"

// Template groups a named checklist with its task definitions in authoring
// order. Generation does not depend on this order.
type Template struct {
	TemplateID   string
	TemplateName string
	Tasks        []models.TemplateTask
}

// Templates returns the built-in template registry.
func Templates() []Template {
	return []Template{
		{
			TemplateID:   GeneralTemplateID,
			TemplateName: "General Launch",
			Tasks:        generalTasks(),
		},
	}
}

// Lookup returns the template with the given id, or ErrTemplateNotFound.
func Lookup(templateID string) (Template, error) {
	for _, tpl := range Templates() {
		if tpl.TemplateID == templateID {
			return tpl, nil
		}
	}
	return Template{}, fmt.Errorf("catalog: %q: %w", templateID, ErrTemplateNotFound)
}
