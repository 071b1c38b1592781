package sip

import "math"

// solverIterations bounds the binary search. Fifty halvings of any
// realistic bracket are far below currency precision.
const solverIterations = 50

// SolveForTarget inverts Project: it binary-searches the monthly
// contribution whose projected future value reaches targetAmount, with tax
// and inflation disabled. The bracket is [100, target/(years*12)] and the
// answer is rounded up to the nearest 100 currency units. It always returns
// after the fixed iteration count; there is no convergence signalling.
func SolveForTarget(targetAmount, annualRatePct float64, years int, stepUpPct float64) float64 {
	low := 100.0
	high := targetAmount / float64(years*12)
	result := low

	for i := 0; i < solverIterations; i++ {
		mid := (low + high) / 2
		projected := Project(Plan{
			MonthlyAmount: mid,
			AnnualRatePct: annualRatePct,
			Years:         years,
			StepUpPct:     stepUpPct,
		})

		if projected.FutureValue >= targetAmount {
			result = mid
			high = mid
		} else {
			low = mid
		}
	}

	return math.Ceil(result/100) * 100
}
