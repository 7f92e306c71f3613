package jetpull

import "errors"

var (
	ErrInvalidHeaderEncoding = errors.New("header block is not valid utf-8")
	ErrMissingHeaderBlock    = errors.New("expected header information not present")
	ErrMalformedVersionLine  = errors.New("version line does not begin with NATS/")
	ErrMalformedHeaderLine   = errors.New("malformed header line")

	ErrTransport    = errors.New("transport failure")
	ErrInvalidBatch = errors.New("batch size must be positive")
	ErrSubClosed    = errors.New("subscription closed")

	ErrConsumerNotFound = errors.New("consumer not found")
	ErrEmptyPoolSize    = errors.New("empty pool size")
)
