package ckks

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/TaihouKai/HElib/utils"
	"github.com/TaihouKai/HElib/utils/bignum"
)

// PrecisionStats is a struct storing statistic about the precision of a decoded slot vector
type PrecisionStats struct {
	MINLog2Prec Stats
	MAXLog2Prec Stats
	AVGLog2Prec Stats
	MEDLog2Prec Stats
	STDLog2Prec Stats

	MINLog2Err Stats
	MAXLog2Err Stats
	AVGLog2Err Stats
	MEDLog2Err Stats
	STDLog2Err Stats

	Log2Scale float64
}

// Stats is a struct storing the real, imaginary and L2 norm (modulus)
// about the precision of a complex value.
type Stats struct {
	Real, Imag, L2 float64
}

func (prec PrecisionStats) String() string {
	return fmt.Sprintf(`
┌─────────┬───────┬───────┬───────┐
│    Log2 │ REAL  │ IMAG  │ L2    │
├─────────┼───────┼───────┼───────┤
│MIN Prec │ %5.2f │ %5.2f │ %5.2f │
│MAX Prec │ %5.2f │ %5.2f │ %5.2f │
│AVG Prec │ %5.2f │ %5.2f │ %5.2f │
│MED Prec │ %5.2f │ %5.2f │ %5.2f │
│STD Prec │ %5.2f │ %5.2f │ %5.2f │
├─────────┼───────┼───────┼───────┤
│MIN Err  │ %5.2f │ %5.2f │ %5.2f │
│MAX Err  │ %5.2f │ %5.2f │ %5.2f │
│AVG Err  │ %5.2f │ %5.2f │ %5.2f │
│MED Err  │ %5.2f │ %5.2f │ %5.2f │
│STD Err  │ %5.2f │ %5.2f │ %5.2f │
└─────────┴───────┴───────┴───────┘
`,
		prec.MINLog2Prec.Real, prec.MINLog2Prec.Imag, prec.MINLog2Prec.L2,
		prec.MAXLog2Prec.Real, prec.MAXLog2Prec.Imag, prec.MAXLog2Prec.L2,
		prec.AVGLog2Prec.Real, prec.AVGLog2Prec.Imag, prec.AVGLog2Prec.L2,
		prec.MEDLog2Prec.Real, prec.MEDLog2Prec.Imag, prec.MEDLog2Prec.L2,
		prec.STDLog2Prec.Real, prec.STDLog2Prec.Imag, prec.STDLog2Prec.L2,
		prec.MINLog2Err.Real, prec.MINLog2Err.Imag, prec.MINLog2Err.L2,
		prec.MAXLog2Err.Real, prec.MAXLog2Err.Imag, prec.MAXLog2Err.L2,
		prec.AVGLog2Err.Real, prec.AVGLog2Err.Imag, prec.AVGLog2Err.L2,
		prec.MEDLog2Err.Real, prec.MEDLog2Err.Imag, prec.MEDLog2Err.L2,
		prec.STDLog2Err.Real, prec.STDLog2Err.Imag, prec.STDLog2Err.L2)
}

// GetPrecisionStats generates a PrecisionStats struct from the reference values and the decoded values.
// Accepted types for want and have are []complex128, []float64 and []*bignum.Complex.
// The differences are computed with the precision of the scale factor.
// The precision of an exact value is capped at logScale.
// Panics if want and have have different or zero lengths, or an invalid type.
func GetPrecisionStats(want, have interface{}, logScale float64) (prec PrecisionStats) {

	valuesWant, valuesHave := toBigComplex(want), toBigComplex(have)

	if len(valuesWant) != len(valuesHave) || len(valuesWant) == 0 {
		panic(fmt.Errorf("cannot GetPrecisionStats: invalid lengths len(want)=%d and len(have)=%d", len(valuesWant), len(valuesHave)))
	}

	precReal := make([]float64, len(valuesWant))
	precImag := make([]float64, len(valuesWant))
	precL2 := make([]float64, len(valuesWant))

	diff := bignum.ToComplex(0.0, scalePrecision)

	for i := range valuesWant {

		diff.Sub(valuesHave[i], valuesWant[i])

		errReal, _ := diff.Real().Float64()
		errImag, _ := diff.Imag().Float64()
		errL2, _ := diff.Abs().Float64()

		precReal[i] = log2Prec(errReal, logScale)
		precImag[i] = log2Prec(errImag, logScale)
		precL2[i] = log2Prec(errL2, logScale)
	}

	prec.Log2Scale = logScale

	prec.MINLog2Prec = summarize(stats.Min, precReal, precImag, precL2)
	prec.MAXLog2Prec = summarize(stats.Max, precReal, precImag, precL2)
	prec.AVGLog2Prec = summarize(stats.Mean, precReal, precImag, precL2)
	prec.MEDLog2Prec = summarize(stats.Median, precReal, precImag, precL2)
	prec.STDLog2Prec = summarize(stats.StandardDeviation, precReal, precImag, precL2)

	// the error is the opposite of the precision, so MIN and MAX swap
	prec.MINLog2Err = negate(prec.MAXLog2Prec)
	prec.MAXLog2Err = negate(prec.MINLog2Prec)
	prec.AVGLog2Err = negate(prec.AVGLog2Prec)
	prec.MEDLog2Err = negate(prec.MEDLog2Prec)
	prec.STDLog2Err = prec.STDLog2Prec

	return
}

// toBigComplex copies the values on complex numbers with the precision of the scale factor.
func toBigComplex(values interface{}) (cmplx []*bignum.Complex) {
	switch values := values.(type) {
	case []complex128:
		cmplx = make([]*bignum.Complex, len(values))
		for i, v := range values {
			cmplx[i] = bignum.ToComplex(v, scalePrecision)
		}
	case []float64:
		cmplx = make([]*bignum.Complex, len(values))
		for i, v := range values {
			cmplx[i] = bignum.ToComplex(v, scalePrecision)
		}
	case []*bignum.Complex:
		cmplx = make([]*bignum.Complex, len(values))
		for i, v := range values {
			if v == nil {
				cmplx[i] = bignum.ToComplex(0.0, scalePrecision)
			} else {
				cmplx[i] = bignum.ToComplex(v, scalePrecision)
			}
		}
	default:
		panic(fmt.Errorf("cannot GetPrecisionStats: invalid values.(type), accepted types are []complex128, []float64 and []*bignum.Complex but is %T", values))
	}
	return
}

// log2Prec returns -log2(|err|), capped at logScale.
func log2Prec(err, logScale float64) float64 {
	if err = math.Abs(err); err == 0 {
		return logScale
	}
	return utils.Min(-math.Log2(err), logScale)
}

func summarize(f func(stats.Float64Data) (float64, error), real, imag, l2 []float64) (s Stats) {
	// Sanity check, the inputs are never empty.
	var err error
	if s.Real, err = f(real); err != nil {
		panic(err)
	}
	if s.Imag, err = f(imag); err != nil {
		panic(err)
	}
	if s.L2, err = f(l2); err != nil {
		panic(err)
	}
	return
}

func negate(s Stats) Stats {
	return Stats{Real: -s.Real, Imag: -s.Imag, L2: -s.L2}
}
