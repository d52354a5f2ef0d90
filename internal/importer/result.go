package importer

// ValidationError is one dropped row's field-level diagnostic. Row is the
// 1-based sheet row number with the header counted as row 1, matching what
// the user sees in their spreadsheet editor.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// ValidationResult is the partial-success outcome of one upload. Every input
// data row either contributes to ValidItems, contributes at least one error,
// or contributes a warning; no row vanishes unexplained. ValidItems keeps
// row order and may contain duplicates; committing them, and deciding
// whether partial success is acceptable, is the caller's job.
type ValidationResult[T any] struct {
	ValidItems []T               `json:"validItems"`
	Errors     []ValidationError `json:"errors"`
	Warnings   []string          `json:"warnings"`
}

// NewValidationResult returns an empty result with non-nil slices so the
// JSON shape is stable even for empty uploads.
func NewValidationResult[T any]() *ValidationResult[T] {
	return &ValidationResult[T]{
		ValidItems: []T{},
		Errors:     []ValidationError{},
		Warnings:   []string{},
	}
}

// AddItem appends a validated record in row order.
func (r *ValidationResult[T]) AddItem(item T) {
	r.ValidItems = append(r.ValidItems, item)
}

// AddError records a field error for a dropped row.
func (r *ValidationResult[T]) AddError(row int, field, value, message string) {
	r.Errors = append(r.Errors, ValidationError{Row: row, Field: field, Value: value, Message: message})
}

// AddWarning records a batch-level or dropped-row warning.
func (r *ValidationResult[T]) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Clean reports whether the batch had no errors and no warnings. Only a
// clean batch is eligible for automatic commit.
func (r *ValidationResult[T]) Clean() bool {
	return len(r.Errors) == 0 && len(r.Warnings) == 0
}
