//go:build cgo

package gpudev

import "github.com/luxfi/mlx"

// These helpers round-trip plain Go slices through mlx device arrays.
// Each dtype gets its own small upload/download pair built on
// mlx.ArrayFromSlice/mlx.AsSlice, because the element type changes on
// the way: int32 vertex ids are widened to int64, and float64 weights are
// narrowed to float32 (so weights read back carry float32 precision).

func uploadInt32(flat []int32, shape []int) *mlx.Array {
	widened := make([]int64, len(flat))
	for i, v := range flat {
		widened[i] = int64(v)
	}
	arr := mlx.ArrayFromSlice(widened, shape, mlx.Int64)
	mlx.Eval(arr)
	return arr
}

func downloadInt32(a *mlx.Array) []int32 {
	if a == nil {
		return nil
	}
	mlx.Synchronize()
	raw := mlx.AsSlice[int64](a)
	out := make([]int32, len(raw))
	for i, v := range raw {
		out[i] = int32(v)
	}
	return out
}

func uploadFloat64(flat []float64, shape []int) *mlx.Array {
	narrowed := make([]float32, len(flat))
	for i, v := range flat {
		narrowed[i] = float32(v)
	}
	arr := mlx.ArrayFromSlice(narrowed, shape, mlx.Float32)
	mlx.Eval(arr)
	return arr
}

func downloadFloat64(a *mlx.Array) []float64 {
	if a == nil {
		return nil
	}
	mlx.Synchronize()
	raw := mlx.AsSlice[float32](a)
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = float64(v)
	}
	return out
}
