//go:build !cgo
// +build !cgo

package embedding

import (
	"context"
	"errors"
)

// ONNXEmbedder stub type when built without CGO (see onnx.go for the
// real implementation).
type ONNXEmbedder struct{}

// NewONNXEmbedder returns an error when built without CGO.
func NewONNXEmbedder(_, _ string, _, _, _ int) (*ONNXEmbedder, error) {
	return nil, errors.New("onnx embedder requires CGO; build with CGO_ENABLED=1 and onnxruntime")
}

// Embed is unreachable: NewONNXEmbedder never returns an instance without CGO.
func (e *ONNXEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("onnx embedder requires CGO; build with CGO_ENABLED=1 and onnxruntime")
}

// EmbedBatch is unreachable: NewONNXEmbedder never returns an instance without CGO.
func (e *ONNXEmbedder) EmbedBatch(_ context.Context, _ []string) ([][]float32, error) {
	return nil, errors.New("onnx embedder requires CGO; build with CGO_ENABLED=1 and onnxruntime")
}

// Dimensions is unreachable: NewONNXEmbedder never returns an instance without CGO.
func (e *ONNXEmbedder) Dimensions() int { return 0 }

// ModelName is unreachable: NewONNXEmbedder never returns an instance without CGO.
func (e *ONNXEmbedder) ModelName() string { return "" }

// Close is unreachable: NewONNXEmbedder never returns an instance without CGO.
func (e *ONNXEmbedder) Close() error { return nil }
