package pipeline

import (
	"fmt"

	"bookgen/internal/model"
)

// SelectFields projects the required columns out of rec and checks that every
// one of them carries a value. Columns the record does not have are treated
// the same as empty ones.
func SelectFields(rec model.RawRecord) (model.SelectedFields, error) {
	projected := make(map[string]string, len(model.SelectedFieldNames))
	for _, field := range model.SelectedFieldNames {
		if v, ok := rec[field]; ok {
			projected[field] = v
		}
	}

	if err := checkFields(projected); err != nil {
		return model.SelectedFields{}, err
	}

	return model.SelectedFields{
		Title:       projected[model.FieldTitle],
		Author:      projected[model.FieldAuthor],
		Publisher:   projected[model.FieldPublisher],
		Genres:      projected[model.FieldGenres],
		PublishDate: projected[model.FieldPublishDate],
		Language:    projected[model.FieldLanguage],
	}, nil
}

// checkFields reports the first required field that is absent or empty.
func checkFields(projected map[string]string) error {
	for _, field := range model.SelectedFieldNames {
		if projected[field] == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}
	return nil
}

// missingColumns returns the required columns absent from a header.
func missingColumns(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, field := range model.SelectedFieldNames {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	return missing
}
