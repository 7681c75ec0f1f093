// Package compress provides the codecs used to shrink article content
// before it is stored. The codec name is persisted alongside the row so
// old rows stay readable after the default changes.
package compress

import "fmt"

type Codec interface {
	Name() string
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// ForName returns the codec a row was written with.
func ForName(name string) (Codec, error) {
	switch name {
	case "", "none":
		return NewNop(), nil
	case "gzip":
		return NewGZip(), nil
	case "zstd":
		return NewZstd(), nil
	case "brotli":
		return NewBrotli(), nil
	default:
		return nil, fmt.Errorf("unknown compression codec %q", name)
	}
}
