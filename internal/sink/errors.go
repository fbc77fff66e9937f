package sink

import "errors"

// Configuration errors for sink constructors.
var (
	errWebhookURLRequired = errors.New("webhook URL is required")
	errBucketRequired     = errors.New("S3 bucket is required")
	errWorkbookPath       = errors.New("workbook path is required")
)
