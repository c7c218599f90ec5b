package ports

import "io"

// DurableResource is the storage backing the transaction journal.
// Writes go through the returned handle and Close releases it.
//
//go:generate go run go.uber.org/mock/mockgen -source=resource.go -destination=mocks/mock_resource.go -package=mocks
type DurableResource interface {
	// OpenAppend opens the resource for appending, creating it if needed.
	OpenAppend() (io.WriteCloser, error)

	// OpenTruncate opens the resource and discards its contents.
	OpenTruncate() (io.WriteCloser, error)

	// ReadAll returns the full contents of the resource.
	// A resource that does not exist yet reads as nil, nil.
	ReadAll() ([]byte, error)
}
