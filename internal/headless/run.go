// Package headless runs one cycle without the TUI, printing the countdown
// to a writer until it completes or the context is cancelled.
package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sandeepkv93/cycletimer/internal/model"
	"github.com/sandeepkv93/cycletimer/internal/poller"
	"github.com/sandeepkv93/cycletimer/internal/storage"
	"github.com/sandeepkv93/cycletimer/internal/store"
)

type Options struct {
	Interval time.Duration
	Now      func() time.Time
	// Interactive rewrites a single line instead of printing one per tick.
	Interactive bool
	Journal     storage.Repository
	Logger      *slog.Logger
}

// Run validates the request, starts a cycle and reports it until it ends.
// The returned cycle carries its terminal status.
func Run(ctx context.Context, out io.Writer, task, minutes string, opts Options) (model.Cycle, error) {
	req, err := model.ParseNewCycleRequest(task, minutes)
	if err != nil {
		return model.Cycle{}, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	st := store.New(store.WithClock(opts.Now))
	c := st.CreateCycle(req)
	journal(ctx, opts, c, true)

	p := poller.New(poller.Config{Interval: opts.Interval, Buffer: 1, Now: opts.Now})
	defer p.Close()
	if err := p.Start(poller.Target{CycleID: c.ID, StartTime: c.StartTime, TotalSeconds: c.TotalSeconds()}); err != nil {
		return c, fmt.Errorf("start poller: %w", err)
	}
	opts.Logger.Info("headless cycle started", "cycle", c.ID, "task", c.Task, "minutes", c.MinutesAmount)

	for {
		select {
		case <-ctx.Done():
			p.Stop()
			done, _ := st.InterruptActive(opts.Now())
			journal(context.WithoutCancel(ctx), opts, done, false)
			fmt.Fprintf(out, "%sinterrupted: %s\n", lineBreak(opts), done.Task)
			opts.Logger.Info("headless cycle interrupted", "cycle", done.ID)
			return done, nil
		case tk, ok := <-p.C():
			if !ok {
				return c, errors.New("headless: poller closed")
			}
			if tk.CycleID != c.ID {
				continue
			}
			cd := model.Present(&c, tk.ElapsedSeconds)
			printLine(out, opts, cd, c.Task)
			if !tk.Done {
				continue
			}
			done, _ := st.CompleteActive(opts.Now())
			journal(ctx, opts, done, false)
			fmt.Fprintf(out, "%scomplete: %s\n", lineBreak(opts), done.Task)
			opts.Logger.Info("headless cycle completed", "cycle", done.ID)
			return done, nil
		}
	}
}

func printLine(out io.Writer, opts Options, cd model.Countdown, task string) {
	if opts.Interactive {
		fmt.Fprintf(out, "\r%s  %s ", cd.String(), task)
		return
	}
	fmt.Fprintf(out, "%s %s\n", cd.String(), task)
}

func lineBreak(opts Options) string {
	if opts.Interactive {
		return "\n"
	}
	return ""
}

func journal(ctx context.Context, opts Options, c model.Cycle, create bool) {
	if opts.Journal == nil {
		return
	}
	rec := storage.FromCycle(c, opts.Now())
	var err error
	if create {
		err = opts.Journal.CreateCycle(ctx, rec)
	} else {
		err = opts.Journal.UpdateCycle(ctx, rec)
	}
	if err != nil {
		opts.Logger.Warn("journal write failed", "cycle", c.ID, "err", err)
	}
}
