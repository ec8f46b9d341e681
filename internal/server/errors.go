package server

import "github.com/matzehuels/reactorsim/pkg/errors"

var errMissingValue = errors.New(errors.ErrCodeInvalidProgress, "query parameter value is required")
