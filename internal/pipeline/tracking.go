package pipeline

import (
	"fmt"
	"math/rand/v2"

	"bookgen/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Stats counts what happened to the records of one run
type Stats struct {
	Read     int64
	Accepted int64
	Rejected map[string]int64
}

func newStats() *Stats {
	return &Stats{Rejected: make(map[string]int64)}
}

// State is everything that survives from one record to the next: the random
// source, the id generator, the counters and the logger. It is threaded
// through every stage instead of living in package globals.
type State struct {
	rng           *rand.Rand
	newID         func() (uuid.UUID, error)
	synthesis     model.SynthesisSpec
	dates         DateChain
	strictGenres  bool
	progressEvery int64
	stats         *Stats
	log           logrus.FieldLogger
}

// StateConfig configures NewState
type StateConfig struct {
	// Seed fixes the synthesized columns; 0 picks a random seed.
	Seed          uint64
	Synthesis     model.SynthesisSpec
	Dates         DateChain
	StrictGenres  bool
	ProgressEvery int
	Logger        logrus.FieldLogger
}

// NewState validates cfg and builds the per-run state.
func NewState(cfg StateConfig) (*State, error) {
	if err := validateSynthesis(cfg.Synthesis); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	dates := cfg.Dates
	if len(dates) == 0 {
		dates = DefaultDateChain
	}

	progress := int64(cfg.ProgressEvery)
	if progress <= 0 {
		progress = 1000
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &State{
		rng:           rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		newID:         uuid.NewRandom,
		synthesis:     cfg.Synthesis,
		dates:         dates,
		strictGenres:  cfg.StrictGenres,
		progressEvery: progress,
		stats:         newStats(),
		log:           log,
	}, nil
}

func validateSynthesis(s model.SynthesisSpec) error {
	if s.MinCopies < 0 || s.MinCopies > s.MaxCopies {
		return fmt.Errorf("invalid copies range [%d, %d]", s.MinCopies, s.MaxCopies)
	}
	if len(s.Rarities) == 0 {
		return fmt.Errorf("rarity domain is empty")
	}
	if len(s.AgeLimits) == 0 {
		return fmt.Errorf("age limit domain is empty")
	}
	return nil
}

// Stats returns a snapshot of the counters.
func (st *State) Stats() Stats {
	rejected := make(map[string]int64, len(st.stats.Rejected))
	for k, v := range st.stats.Rejected {
		rejected[k] = v
	}
	return Stats{Read: st.stats.Read, Accepted: st.stats.Accepted, Rejected: rejected}
}

func (st *State) read() int64 {
	st.stats.Read++
	return st.stats.Read
}

func (st *State) reject(row int64, reason string, err error) {
	st.stats.Rejected[reason]++
	st.log.WithFields(logrus.Fields{
		"row":    row,
		"reason": reason,
	}).Debugf("⏭️ Skipping record: %v", err)
}

// accept bumps the 1-based accepted counter and reports progress.
func (st *State) accept(book model.Book) {
	st.stats.Accepted++
	n := st.stats.Accepted

	if n == 1 {
		st.log.WithField("record", book).Info("📖 First accepted record")
	}
	st.log.Debugf("📚 Row #%d", n)
	if n <= 10 || n%st.progressEvery == 0 {
		st.log.WithField("accepted", n).Infof("📚 Generated %d records", n)
	}
}
