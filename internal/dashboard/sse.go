package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kanthai/launchpad/internal/models"
	"gorm.io/gorm"
)

// blockedEvent holds data for a blocked-task SSE event.
type blockedEvent struct {
	ProductTaskID string `json:"product_task_id"`
	ProductID     string `json:"product_id"`
	TaskName      string `json:"task_name"`
	OwnerEmail    string `json:"owner_email"`
	BlockerReason string `json:"blocker_reason"`
	Count         int64  `json:"count"`
}

// handleSSE streams blocked-task alerts to dashboard clients. It polls
// for tasks that entered Blocked since the last check.
func handleSSE(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")

		writeSSE(c.Writer, "connected", map[string]string{"type": "connected"})
		c.Writer.Flush()

		if db == nil {
			return
		}

		lastSeen := time.Now()

		ctx := c.Request.Context()
		ticker := time.NewTicker(3 * time.Second)
		heartbeat := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		defer heartbeat.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-heartbeat.C:
				writeSSE(c.Writer, "heartbeat", map[string]string{
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				})
				c.Writer.Flush()
			case <-ticker.C:
				var newBlocked []models.ProductTask
				db.Where("status = ? AND updated_at > ?", models.StatusBlocked, lastSeen).
					Order("updated_at ASC").
					Find(&newBlocked)
				lastSeen = time.Now()

				if len(newBlocked) == 0 {
					continue
				}

				var count int64
				db.Model(&models.ProductTask{}).
					Where("status = ?", models.StatusBlocked).
					Count(&count)

				latest := newBlocked[len(newBlocked)-1]
				writeSSE(c.Writer, "blocked", blockedEvent{
					ProductTaskID: latest.ProductTaskID,
					ProductID:     latest.ProductID,
					TaskName:      latest.TaskName,
					OwnerEmail:    latest.OwnerEmail,
					BlockerReason: latest.BlockerReason,
					Count:         count,
				})
				c.Writer.Flush()
			}
		}
	}
}

// writeSSE writes a single SSE event to the writer.
func writeSSE(w io.Writer, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(jsonData))
}
