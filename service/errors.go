package service

import "errors"

var (
	// ErrBulkFetch means a CSV export could not be downloaded or parsed
	ErrBulkFetch = errors.New("bulk export fetch failed")

	// ErrPageFetch means the paginated transactions fetch gave up
	ErrPageFetch = errors.New("transactions fetch failed")

	// ErrLoad means writing to the store failed and the batch was rolled back
	ErrLoad = errors.New("load failed")
)
