package storage

import "errors"

var (
	// ErrBackendUnavailable means the preferred backend could not be
	// opened. The store recovers by falling back, so callers normally
	// never see it outside logs.
	ErrBackendUnavailable = errors.New("storage backend unavailable")

	// ErrQueryTranslation means a structured query referenced a field the
	// active backend cannot express (e.g. filtering on a JSON column in
	// the relational backend).
	ErrQueryTranslation = errors.New("query not translatable for backend")
)
