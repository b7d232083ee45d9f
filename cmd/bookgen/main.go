package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"bookgen/internal/config"
	"bookgen/internal/logging"
	"bookgen/internal/pipeline"
	"bookgen/internal/store"
	"bookgen/pkg/utils"

	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code: 0 on success,
// 1 when the generator or journal fails, 2 on usage or configuration errors.
func run(args []string, stdout, stderr io.Writer) int {
	fs := config.Flags("bookgen")
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "logging: %v\n", err)
		return 2
	}

	if listRuns, _ := fs.GetBool("list-runs"); listRuns {
		if cfg.Journal == "" {
			fmt.Fprintln(stderr, "--list-runs needs --journal")
			return 2
		}
		if err := printRuns(cfg.Journal, stdout); err != nil {
			log.WithError(err).Error("failed to list runs")
			return 1
		}
		return 0
	}

	outputs := utils.NewOutputManager("")
	if t := outputs.GetFileType(cfg.Output); t != "csv" {
		log.Warnf("output %s has a %s extension; writing CSV anyway", cfg.Output, t)
	}

	opts := pipeline.Options{
		Input:         cfg.Input,
		Output:        cfg.Output,
		Seed:          cfg.Seed,
		StrictGenres:  cfg.StrictGenres,
		ProgressEvery: cfg.ProgressEvery,
		Synthesis:     cfg.Synthesis,
		Logger:        log,
		Outputs:       outputs,
	}

	// Init journal
	if cfg.Journal != "" {
		journal, err := store.Open(cfg.Journal)
		if err != nil {
			log.WithError(err).Error("failed to open run journal")
			return 1
		}
		defer journal.Close()
		opts.Journal = journal
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := pipeline.Run(ctx, opts); err != nil {
		log.WithError(err).Error("generator failed")
		return 1
	}
	return 0
}

// printRuns writes one line per journaled run, newest first
func printRuns(path string, out io.Writer) error {
	journal, err := store.Open(path)
	if err != nil {
		return err
	}
	defer journal.Close()

	runs, err := journal.ListRuns()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTATUS\tREAD\tACCEPTED\tREJECTED\tSTARTED\tDURATION\tERROR")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%v\t%s\n",
			r.RunID, r.Status, r.Read, r.Accepted, r.RejectedTotal(),
			r.StartedAt.Format(time.RFC3339), r.Duration(), r.Error)
	}
	return tw.Flush()
}
