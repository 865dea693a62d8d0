package ml

import (
	"github.com/drakos74/free-segment/internal/buffer"
	"github.com/drakos74/free-segment/internal/model"
)

// Fit computes the per column mean and population standard deviation of the matrix.
func Fit(data model.Matrix) model.ScalingParameters {
	sc := buffer.NewStatsCollector(data.Dim())
	for _, v := range data {
		sc.Push(v...)
	}
	return model.ScalingParameters{
		Mean:   sc.Avg(),
		StdDev: sc.StDev(),
	}
}

// FitTransform standardises the matrix to zero mean and unit variance per column.
// Columns with zero variance are mapped to 0. The input is not modified.
func FitTransform(data model.Matrix) (model.Matrix, model.ScalingParameters) {
	params := Fit(data)
	return params.Transform(data), params
}
