package dashboard

import "errors"

var (
	errInvalidFrom   = errors.New("invalid 'from' date format. Expected format: YYYY-MM-DD")
	errInvalidTo     = errors.New("invalid 'to' date format. Expected format: YYYY-MM-DD")
	errRangeInverted = errors.New("start date cannot be after end date")
)
