// Package summary derives the class-wide score distribution: grade counts,
// histogram bins, a kernel density estimate and a fitted normal curve. It
// produces data for whatever renders it; drawing charts is someone else's
// job.
package summary

import (
	"fmt"
	"io"
	"math"

	"github.com/gradeflow/gradeflow/internal/pipeline"
	"github.com/gradeflow/gradeflow/internal/scoring"
)

const (
	defaultBins  = 20
	curveSamples = 200
)

type GradeCount struct {
	Letter string `json:"letter"`
	Count  int    `json:"count"`
}

type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distribution is the statistical summary of one run's final scores.
type Distribution struct {
	Count       int          `json:"count"`
	Mean        float64      `json:"mean"`
	StdDev      float64      `json:"std_dev"`
	GradeCounts []GradeCount `json:"grade_counts"`
	Histogram   []Bin        `json:"histogram"`
	Density     []Point      `json:"density"`
	Normal      []Point      `json:"normal"`
}

// Summarize builds the distribution for a set of final records. Grade counts
// come out in scale order (best letter first). With fewer than two students
// the spread-based parts are left empty.
func Summarize(recs []pipeline.FinalRecord, scale scoring.GradeScale) Distribution {
	d := Distribution{Count: len(recs)}

	counts := map[string]int{}
	scores := make([]float64, 0, len(recs))
	for _, r := range recs {
		counts[r.Grade]++
		scores = append(scores, r.FinalScore)
	}
	for _, letter := range scale.Letters() {
		d.GradeCounts = append(d.GradeCounts, GradeCount{Letter: letter, Count: counts[letter]})
	}
	if len(scores) == 0 {
		return d
	}

	d.Mean = mean(scores)
	d.StdDev = stddev(scores, d.Mean)
	d.Histogram = histogram(scores, defaultBins)
	if d.StdDev > 0 {
		lo, hi := d.Mean-5*d.StdDev, d.Mean+5*d.StdDev
		d.Normal = sampleCurve(lo, hi, curveSamples, func(x float64) float64 {
			return normalPDF(x, d.Mean, d.StdDev)
		})
		bw := bandwidth(scores, d.StdDev)
		d.Density = sampleCurve(lo, hi, curveSamples, func(x float64) float64 {
			return kde(scores, bw, x)
		})
	}
	return d
}

func mean(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

// stddev is the sample standard deviation (n-1 denominator).
func stddev(xs []float64, m float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var s float64
	for _, x := range xs {
		s += (x - m) * (x - m)
	}
	return math.Sqrt(s / float64(len(xs)-1))
}

func histogram(xs []float64, bins int) []Bin {
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if hi == lo {
		return []Bin{{Low: lo, High: hi, Count: len(xs)}}
	}
	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Low: lo + float64(i)*width, High: lo + float64(i+1)*width}
	}
	for _, x := range xs {
		i := int((x - lo) / width)
		if i >= bins { // hi lands in the last bin
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

func normalPDF(x, mean, sd float64) float64 {
	z := (x - mean) / sd
	return math.Exp(-0.5*z*z) / (sd * math.Sqrt(2*math.Pi))
}

// bandwidth is Scott's rule, the same default the original density plot used.
func bandwidth(xs []float64, sd float64) float64 {
	return sd * math.Pow(float64(len(xs)), -1.0/5.0)
}

func kde(xs []float64, bw, at float64) float64 {
	var s float64
	for _, x := range xs {
		s += normalPDF(at, x, bw)
	}
	return s / float64(len(xs))
}

func sampleCurve(lo, hi float64, n int, f func(float64) float64) []Point {
	out := make([]Point, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		x := lo + float64(i)*step
		out[i] = Point{X: x, Y: f(x)}
	}
	return out
}

// WriteText renders the distribution as a plain-text table for the CLI.
func (d Distribution) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "students: %d\nmean final score: %.4f\nstd dev: %.4f\n", d.Count, d.Mean, d.StdDev); err != nil {
		return err
	}
	for _, gc := range d.GradeCounts {
		if _, err := fmt.Fprintf(w, "%s: %d\n", gc.Letter, gc.Count); err != nil {
			return err
		}
	}
	return nil
}
