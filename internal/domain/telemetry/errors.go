package telemetry

import "errors"

// ErrBatchTooLarge rejects an ingest request carrying more events than the
// configured batch limit. Nothing from the batch is stored; the client must
// split and resubmit.
var ErrBatchTooLarge = errors.New("batch exceeds the maximum accepted size")
