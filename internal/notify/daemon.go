package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"gorm.io/gorm"
)

// Daemon posts the launch digest on a cron schedule. It blocks in Run
// until the context is cancelled.
type Daemon struct {
	db     *gorm.DB
	poster Poster
	cron   string
	out    io.Writer
}

// DaemonOpts holds parameters for creating a Daemon.
type DaemonOpts struct {
	DB     *gorm.DB
	Poster Poster
	Cron   string    // 5-field cron expression, defaults to DefaultDigestCron
	Out    io.Writer // defaults to os.Stdout
}

// NewDaemon creates a digest Daemon.
func NewDaemon(opts DaemonOpts) (*Daemon, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("notify: db is required")
	}
	if opts.Poster == nil {
		return nil, fmt.Errorf("notify: poster is required")
	}
	if opts.Cron == "" {
		opts.Cron = DefaultDigestCron
	}
	if _, err := cronParser.Parse(opts.Cron); err != nil {
		return nil, fmt.Errorf("notify: bad cron %q: %w", opts.Cron, err)
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Daemon{db: opts.DB, poster: opts.Poster, cron: opts.Cron, out: out}, nil
}

// Run blocks, posting a digest each time the cron schedule fires, until
// the context is cancelled. The adapter is closed on the way out.
func (d *Daemon) Run(ctx context.Context) error {
	defer d.poster.Close()
	fmt.Fprintf(d.out, "Digest scheduler running (%s)\n", d.cron)

	for {
		wait := nextCronDuration(d.cron)
		if wait <= 0 {
			wait = time.Minute
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			if err := d.RunOnce(ctx); err != nil {
				fmt.Fprintf(d.out, "digest: %v\n", err)
			}
		}
	}
}

// RunOnce builds and posts a single digest. A digest with nothing to
// report is skipped silently.
func (d *Daemon) RunOnce(ctx context.Context) error {
	digest, err := BuildDigest(d.db, time.Now())
	if err != nil {
		return err
	}
	if digest == nil {
		fmt.Fprintf(d.out, "digest: nothing to report\n")
		return nil
	}
	if err := d.poster.Post(ctx, Format(digest)); err != nil {
		return fmt.Errorf("notify: post digest: %w", err)
	}
	fmt.Fprintf(d.out, "digest: posted (%d overdue, %d blocked, %d high risk)\n",
		len(digest.Overdue), len(digest.Blocked), len(digest.HighRisk))
	return nil
}
