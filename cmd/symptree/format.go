package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pbanos/symptree"
	"github.com/shopspring/decimal"
)

const barWidth = 30

var (
	green  = color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

// percent formats a probability as a percentage rounded to 2 decimal places.
func percent(p float64) string {
	return decimal.NewFromFloat(p).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

func bar(p float64) string {
	n := int(decimal.NewFromFloat(p).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
	if n < 0 {
		n = 0
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}

func printDiagnoses(w io.Writer, r *symptree.Result, k int) {
	primary := r.Primary()
	fmt.Fprintf(w, "Primary diagnosis: %s (confidence %s)\n", green(primary.Label), percent(primary.Probability))
	fmt.Fprintln(w, "Top diagnoses:")
	for i, d := range r.TopK(k) {
		paint := yellow
		if i == 0 {
			paint = green
		}
		fmt.Fprintf(w, "  %s %s %8s\n", paint(fmt.Sprintf("%-24s", d.Label)), bar(d.Probability), percent(d.Probability))
	}
}

func printReport(w io.Writer, r *symptree.Report) {
	fmt.Fprintf(w, "Accuracy: %s over %d examples\n", cyan(percent(r.Accuracy)), r.Count)
	fmt.Fprintf(w, "%-24s %9s %9s %9s %8s\n", "label", "precision", "recall", "f1", "support")
	for _, lr := range r.Labels {
		fmt.Fprintf(w, "%-24s %9s %9s %9s %8d\n",
			lr.Label,
			decimal.NewFromFloat(lr.Precision).StringFixed(3),
			decimal.NewFromFloat(lr.Recall).StringFixed(3),
			decimal.NewFromFloat(lr.F1).StringFixed(3),
			lr.Support)
	}
}

func printImportances(w io.Writer, importances []symptree.Importance, n int) {
	if n <= 0 || n > len(importances) {
		n = len(importances)
	}
	for _, im := range importances[:n] {
		fmt.Fprintf(w, "  %-24s %s %8s\n", im.Symptom, bar(im.Importance), percent(im.Importance))
	}
}
