package pipeline

import (
	"fmt"

	"bookgen/internal/model"
)

// TransformRecord runs one raw record through the selector, the date
// normalizer and the genre decoder, then enriches the survivor. The returned
// error is one of the package's sentinel errors (wrapped) when a gate rejects it.
func TransformRecord(rec model.RawRecord, st *State) (model.Book, error) {
	selected, err := SelectFields(rec)
	if err != nil {
		return model.Book{}, err
	}

	year, err := st.dates.Resolve(selected.PublishDate)
	if err != nil {
		return model.Book{}, err
	}

	genres, err := DecodeGenres(selected.Genres)
	if err != nil {
		return model.Book{}, err
	}

	return Enrich(selected, year, genres, st)
}

// Enrich assigns a fresh id and draws the synthesized attributes from st.
func Enrich(sel model.SelectedFields, year int, genres string, st *State) (model.Book, error) {
	id, err := st.newID()
	if err != nil {
		return model.Book{}, fmt.Errorf("generate id: %w", err)
	}

	synth := st.synthesis
	return model.Book{
		ID:           id.String(),
		Title:        sel.Title,
		Author:       sel.Author,
		Publisher:    sel.Publisher,
		CopiesNumber: synth.MinCopies + st.rng.IntN(synth.MaxCopies-synth.MinCopies+1),
		Rarity:       synth.Rarities[st.rng.IntN(len(synth.Rarities))],
		Genres:       genres,
		PublishYear:  year,
		Language:     sel.Language,
		AgeLimit:     synth.AgeLimits[st.rng.IntN(len(synth.AgeLimits))],
	}, nil
}
