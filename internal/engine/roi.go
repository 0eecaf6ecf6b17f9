package engine

import "github.com/alexanderramin/caseload/internal/domain"

// PricedCase is the input to ROI evaluation. Price <= 0 means unpriced.
type PricedCase struct {
	Name           string
	CaseType       string
	Score          float64
	Price          float64
	EstimatedHours float64
}

// ROIRow is one evaluated case. ROI is unrounded.
type ROIRow struct {
	PricedCase
	ROI        float64
	Evaluation domain.Evaluation
}

// ROIReport summarises price against complexity across a portfolio.
type ROIReport struct {
	Rows              []ROIRow
	AverageROI        float64
	AveragePrice      float64
	AverageComplexity float64
	PricedCount       int
	Underpriced       []string
	Stars             []string
	Unpriced          []string
}

// ROI is price per complexity point, or 0 when the score is not positive.
func ROI(score, price float64) float64 {
	if score > 0 {
		return price / score
	}
	return 0
}

// EvaluateROI computes per-case ROI and the portfolio comparisons.
// The ROI mean covers priced cases with a positive score only, so a
// zero-complexity case never drags it down.
func EvaluateROI(cases []PricedCase) ROIReport {
	var r ROIReport
	var roiSum, priceSum, scoreSum float64
	var roiN int

	rows := make([]ROIRow, len(cases))
	for i, c := range cases {
		rows[i] = ROIRow{PricedCase: c, ROI: ROI(c.Score, c.Price)}
		scoreSum += c.Score
		if c.Price > 0 {
			r.PricedCount++
			priceSum += c.Price
			if c.Score > 0 {
				roiSum += rows[i].ROI
				roiN++
			}
		} else {
			r.Unpriced = append(r.Unpriced, c.Name)
		}
	}
	if roiN > 0 {
		r.AverageROI = roiSum / float64(roiN)
	}
	if r.PricedCount > 0 {
		r.AveragePrice = priceSum / float64(r.PricedCount)
	}
	if len(cases) > 0 {
		r.AverageComplexity = scoreSum / float64(len(cases))
	}

	for i := range rows {
		rows[i].Evaluation = evaluate(rows[i], r.AverageROI)
	}
	r.Rows = rows

	if r.PricedCount == 0 {
		return r
	}
	for _, row := range rows {
		switch {
		case row.Price > 0 && row.Score > r.AverageComplexity && row.Price < r.AveragePrice:
			r.Underpriced = append(r.Underpriced, row.Name)
		case row.Score < r.AverageComplexity && row.Price > r.AveragePrice:
			r.Stars = append(r.Stars, row.Name)
		}
	}
	return r
}

func evaluate(row ROIRow, avg float64) domain.Evaluation {
	switch {
	case row.Price <= 0:
		return domain.EvalUnpriced
	case row.ROI > 0 && row.ROI >= avg:
		return domain.EvalAboveAverage
	default:
		return domain.EvalBelowAverage
	}
}
