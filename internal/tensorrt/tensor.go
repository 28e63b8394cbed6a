// Package tensorrt is the optional external tensor runtime the IR's
// tensor.* opcodes dispatch to. The core interpreter treats it purely as
// an external collaborator (per the spec's external-interfaces split):
// with no Runtime registered, tensor opcodes degrade to a null pointer
// value; registering one gives them real dense-array semantics.
// Grounded loosely on the elementwise/matmul array operations in
// gx-org-gx's stdlib/num package, reduced to a single dense float64
// buffer since Zero's IR carries no shape information for tensors yet.
package tensorrt

import "fmt"

// Tensor is a dense row-major float64 array with an explicit shape.
type Tensor struct {
	Shape []int64
	Data  []float64
}

func numel(shape []int64) int64 {
	n := int64(1)
	for _, d := range shape {
		n *= d
	}
	return n
}

// New allocates a zero-filled tensor of the given shape.
func New(shape []int64) *Tensor {
	return &Tensor{Shape: append([]int64(nil), shape...), Data: make([]float64, numel(shape))}
}

func sameShape(a, b *Tensor) bool {
	if len(a.Shape) != len(b.Shape) {
		return false
	}
	for i := range a.Shape {
		if a.Shape[i] != b.Shape[i] {
			return false
		}
	}
	return true
}

func elementwise(a, b *Tensor, op func(x, y float64) float64) (*Tensor, error) {
	if !sameShape(a, b) {
		return nil, fmt.Errorf("tensorrt: shape mismatch %v vs %v", a.Shape, b.Shape)
	}
	out := New(a.Shape)
	for i := range a.Data {
		out.Data[i] = op(a.Data[i], b.Data[i])
	}
	return out, nil
}

// Runtime is the tensor backend the interpreter dispatches tensor.*
// opcodes to.
type Runtime interface {
	Alloc(shape []int64) (*Tensor, error)
	Add(a, b *Tensor) (*Tensor, error)
	Sub(a, b *Tensor) (*Tensor, error)
	Mul(a, b *Tensor) (*Tensor, error)
	Matmul(a, b *Tensor) (*Tensor, error)
	Relu(a *Tensor) (*Tensor, error)
}

// CPURuntime is a straightforward single-threaded dense-array Runtime,
// sufficient for tests and small programs; it does no fusion or
// parallelism.
type CPURuntime struct{}

func (CPURuntime) Alloc(shape []int64) (*Tensor, error) { return New(shape), nil }

func (CPURuntime) Add(a, b *Tensor) (*Tensor, error) {
	return elementwise(a, b, func(x, y float64) float64 { return x + y })
}

func (CPURuntime) Sub(a, b *Tensor) (*Tensor, error) {
	return elementwise(a, b, func(x, y float64) float64 { return x - y })
}

func (CPURuntime) Mul(a, b *Tensor) (*Tensor, error) {
	return elementwise(a, b, func(x, y float64) float64 { return x * y })
}

// Matmul multiplies two rank-2 tensors.
func (CPURuntime) Matmul(a, b *Tensor) (*Tensor, error) {
	if len(a.Shape) != 2 || len(b.Shape) != 2 {
		return nil, fmt.Errorf("tensorrt: matmul requires rank-2 tensors, got %v and %v", a.Shape, b.Shape)
	}
	m, k, k2, n := a.Shape[0], a.Shape[1], b.Shape[0], b.Shape[1]
	if k != k2 {
		return nil, fmt.Errorf("tensorrt: matmul inner dimension mismatch %d vs %d", k, k2)
	}
	out := New([]int64{m, n})
	for i := int64(0); i < m; i++ {
		for j := int64(0); j < n; j++ {
			var sum float64
			for x := int64(0); x < k; x++ {
				sum += a.Data[i*k+x] * b.Data[x*n+j]
			}
			out.Data[i*n+j] = sum
		}
	}
	return out, nil
}

func (CPURuntime) Relu(a *Tensor) (*Tensor, error) {
	out := New(a.Shape)
	for i, v := range a.Data {
		if v > 0 {
			out.Data[i] = v
		}
	}
	return out, nil
}
