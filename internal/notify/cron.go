package notify

import (
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultDigestCron posts the digest at 09:00 every day, matching the
// config default for digest_cron.
const DefaultDigestCron = "0 9 * * *"

// cronParser accepts standard 5-field expressions (minute hour dom month
// dow), the format of the digest_cron config key.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// nextCronDuration reports how long until expr next fires. Unparseable
// expressions and fire times already in the past both yield 0, which the
// daemon treats as "wait the minimum and re-evaluate".
func nextCronDuration(expr string) time.Duration {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return 0
	}
	d := time.Until(sched.Next(time.Now()))
	if d < 0 {
		return 0
	}
	return d
}
