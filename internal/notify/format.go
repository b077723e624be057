package notify

import (
	"fmt"
	"strings"
)

// Format renders a digest as a plain-text chat message. Both Slack and
// Discord render the *bold* markers acceptably.
func Format(d *Digest) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("*Launch Digest — %s*", d.Date))

	if len(d.Overdue) > 0 {
		lines = append(lines, "", fmt.Sprintf("*Overdue (%d)*", len(d.Overdue)))
		for _, a := range d.Overdue {
			line := fmt.Sprintf("  %s / %s — due %s (%dd late)", a.ProductName, a.TaskName, a.DueDate, a.DaysOverdue)
			if a.OwnerEmail != "" {
				line += " — " + a.OwnerEmail
			}
			lines = append(lines, line)
		}
	}

	if len(d.Blocked) > 0 {
		lines = append(lines, "", fmt.Sprintf("*Blocked (%d)*", len(d.Blocked)))
		for _, a := range d.Blocked {
			line := fmt.Sprintf("  %s / %s", a.ProductName, a.TaskName)
			if a.Reason != "" {
				line += fmt.Sprintf(" — %s", a.Reason)
			}
			lines = append(lines, line)
		}
	}

	if len(d.HighRisk) > 0 {
		lines = append(lines, "", fmt.Sprintf("*High Risk (%d)*", len(d.HighRisk)))
		for _, a := range d.HighRisk {
			line := fmt.Sprintf("  %s — risk %d, go-live %s", a.ProductName, a.RiskScore, a.GoLiveDate)
			if len(a.Drivers) > 0 {
				line += " (" + strings.Join(a.Drivers, "; ") + ")"
			}
			lines = append(lines, line)
		}
	}

	if len(d.UpcomingSoon) > 0 {
		lines = append(lines, "", "*Launching This Week*")
		for _, s := range d.UpcomingSoon {
			lines = append(lines, "  "+s)
		}
	}

	return strings.Join(lines, "\n")
}
