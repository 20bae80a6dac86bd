package storage

import "io"

// BlobStore is where uploaded source files live before a run reads them.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	List(pattern string) ([]string, error)
}
