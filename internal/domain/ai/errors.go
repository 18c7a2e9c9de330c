package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrEmptyCompletion means the provider answered without any usable text.
var ErrEmptyCompletion = errors.New("ai returned an empty completion")

// ErrDisabled is returned by the offline classifier.
var ErrDisabled = errors.New("classifier disabled")
