package tensorrt

import "testing"

func TestCPURuntimeAddMatchesElementwiseSum(t *testing.T) {
	rt := CPURuntime{}
	a := &Tensor{Shape: []int64{2}, Data: []float64{1, 2}}
	b := &Tensor{Shape: []int64{2}, Data: []float64{10, 20}}
	out, err := rt.Add(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Data[0] != 11 || out.Data[1] != 22 {
		t.Fatalf("unexpected result: %v", out.Data)
	}
}

func TestCPURuntimeAddRejectsShapeMismatch(t *testing.T) {
	rt := CPURuntime{}
	a := &Tensor{Shape: []int64{2}, Data: []float64{1, 2}}
	b := &Tensor{Shape: []int64{3}, Data: []float64{1, 2, 3}}
	if _, err := rt.Add(a, b); err == nil {
		t.Fatalf("expected a shape mismatch error")
	}
}

func TestCPURuntimeMatmulComputesProduct(t *testing.T) {
	rt := CPURuntime{}
	// [[1,2],[3,4]] x [[5,6],[7,8]] = [[19,22],[43,50]]
	a := &Tensor{Shape: []int64{2, 2}, Data: []float64{1, 2, 3, 4}}
	b := &Tensor{Shape: []int64{2, 2}, Data: []float64{5, 6, 7, 8}}
	out, err := rt.Matmul(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{19, 22, 43, 50}
	for i, v := range want {
		if out.Data[i] != v {
			t.Fatalf("index %d: want %v got %v", i, v, out.Data[i])
		}
	}
}

func TestCPURuntimeMatmulRejectsInnerDimensionMismatch(t *testing.T) {
	rt := CPURuntime{}
	a := &Tensor{Shape: []int64{2, 3}, Data: make([]float64, 6)}
	b := &Tensor{Shape: []int64{2, 2}, Data: make([]float64, 4)}
	if _, err := rt.Matmul(a, b); err == nil {
		t.Fatalf("expected an inner dimension mismatch error")
	}
}

func TestCPURuntimeReluZeroesNegatives(t *testing.T) {
	rt := CPURuntime{}
	a := &Tensor{Shape: []int64{3}, Data: []float64{-2, 0, 5}}
	out, err := rt.Relu(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Data[0] != 0 || out.Data[1] != 0 || out.Data[2] != 5 {
		t.Fatalf("unexpected result: %v", out.Data)
	}
}

func TestCPURuntimeAllocZeroFills(t *testing.T) {
	rt := CPURuntime{}
	out, err := rt.Alloc([]int64{2, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Data) != 4 {
		t.Fatalf("expected 4 elements, got %d", len(out.Data))
	}
	for _, v := range out.Data {
		if v != 0 {
			t.Fatalf("expected zero-filled tensor, got %v", out.Data)
		}
	}
}
