package compress

type Nop struct{}

func NewNop() Nop {
	return Nop{}
}

func (Nop) Name() string { return "none" }

func (Nop) Encode(data []byte) ([]byte, error) {
	return data, nil
}

func (Nop) Decode(data []byte) ([]byte, error) {
	return data, nil
}
