package compress

import "github.com/klauspost/compress/zstd"

type Zstd struct{}

func NewZstd() Zstd {
	return Zstd{}
}

func (Zstd) Name() string { return "zstd" }

func (Zstd) Encode(data []byte) ([]byte, error) {
	w, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	out := w.EncodeAll(data, nil)
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

func (Zstd) Decode(data []byte) ([]byte, error) {
	r, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.DecodeAll(data, nil)
}
