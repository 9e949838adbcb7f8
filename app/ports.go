package app

//go:generate mockgen -source=ports.go -destination=mocks/ports_mock.go -package=mocks

import (
	"paysquare/bysquare"
)

type Encoder interface {
	Encode(model bysquare.Model) (string, error)
}

// EncoderFunc adapts a plain function such as bysquare.Encode.
type EncoderFunc func(model bysquare.Model) (string, error)

func (f EncoderFunc) Encode(model bysquare.Model) (string, error) {
	return f(model)
}

type Renderer interface {
	Render(content string) error
}

type Opener interface {
	Open(content string) error
}

type ImageWriter interface {
	WriteFile(content, path string) error
}
