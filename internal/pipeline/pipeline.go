package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"bookgen/internal/model"
	"bookgen/pkg/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Journal records run outcomes. store.Store implements it.
type Journal interface {
	SaveRun(summary model.Summary) error
	FinishRun(summary model.Summary) error
}

// Options configures a generator run
type Options struct {
	Input         string
	Output        string
	Seed          uint64
	StrictGenres  bool
	ProgressEvery int
	Synthesis     model.SynthesisSpec
	Dates         DateChain
	Logger        *logrus.Logger
	Journal       Journal
	Outputs       *utils.OutputManager
}

// ------------------- Pipeline Runner -------------------

// Run reads opts.Input, writes every accepted book to opts.Output and returns
// the run summary. The summary is filled in on failure too; rows written
// before a fatal error stay in the output.
func Run(ctx context.Context, opts Options) (summary model.Summary, err error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	outputs := opts.Outputs
	if outputs == nil {
		outputs = utils.NewOutputManager("")
	}

	runID := uuid.New().String()
	runLog := log.WithField("run_id", runID)
	summary = model.Summary{
		RunID:     runID,
		Input:     opts.Input,
		Output:    opts.Output,
		Status:    model.StatusRunning,
		Rejected:  map[string]int64{},
		StartedAt: time.Now().UTC(),
	}
	runLog.Infof("🚀 Starting generator: %s -> %s", opts.Input, opts.Output)

	if opts.Journal != nil {
		if jerr := opts.Journal.SaveRun(summary); jerr != nil {
			runLog.WithError(jerr).Warn("failed to journal run start")
		}
	}

	st, err := NewState(StateConfig{
		Seed:          opts.Seed,
		Synthesis:     opts.Synthesis,
		Dates:         opts.Dates,
		StrictGenres:  opts.StrictGenres,
		ProgressEvery: opts.ProgressEvery,
		Logger:        runLog,
	})

	defer func() {
		summary.FinishedAt = time.Now().UTC()
		if st != nil {
			stats := st.Stats()
			summary.Read, summary.Accepted, summary.Rejected = stats.Read, stats.Accepted, stats.Rejected
		}
		switch {
		case err == nil:
			summary.Status = model.StatusCompleted
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			summary.Status = model.StatusCancelled
			summary.Error = err.Error()
		default:
			summary.Status = model.StatusFailed
			summary.Error = err.Error()
		}
		logSummary(runLog, summary)
		if opts.Journal != nil {
			if jerr := opts.Journal.FinishRun(summary); jerr != nil {
				runLog.WithError(jerr).Warn("failed to journal run result")
			}
		}
	}()

	if err != nil {
		return summary, err
	}

	src, err := OpenCSV(opts.Input)
	if err != nil {
		return summary, err
	}
	defer src.Close()
	runLog.WithField("columns", src.Headers()).Debug("🔍 Input columns")

	sink, err := CreateCSV(outputs, opts.Output)
	if err != nil {
		return summary, err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()

	err = Generate(ctx, src, sink, st)
	runLog.Infof("💾 Wrote %d rows to %s", sink.Count(), sink.Path)
	return summary, err
}

// Generate is the per-record loop: read, transform, and either reject the
// record or write it. It stops at end of input, on a hard error, or when ctx
// is done. It does not close sink.
func Generate(ctx context.Context, src RecordSource, sink Sink, st *State) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		row := st.read()

		book, err := TransformRecord(rec, st)
		if err != nil {
			if reason, soft := rejectionReason(err, st.strictGenres); soft {
				st.reject(row, reason, err)
				continue
			}
			return fmt.Errorf("row %d: %w", row, err)
		}

		if err := sink.Write(book); err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
		st.accept(book)
	}
}

func logSummary(log logrus.FieldLogger, s model.Summary) {
	fields := logrus.Fields{
		"status":   s.Status,
		"read":     s.Read,
		"accepted": s.Accepted,
		"rejected": s.RejectedTotal(),
	}
	for reason, n := range s.Rejected {
		fields["rejected_"+reason] = n
	}

	entry := log.WithFields(fields)
	if s.Status == model.StatusCompleted {
		entry.Infof("🏁 Generator completed in %v", s.Duration())
		return
	}
	entry.Errorf("❌ Generator %s after %v: %s", s.Status, s.Duration(), s.Error)
}
