package payroll

import (
	"math"

	"emsconsole/internal/gateway"
)

// Summary totals a run of payroll records.
type Summary struct {
	Months      int     `json:"months"`
	BasicSalary float64 `json:"basicSalary"`
	Allowance   float64 `json:"allowance"`
	Deduction   float64 `json:"deduction"`
	NetSalary   float64 `json:"netSalary"`
}

// ComputeNet derives net pay from its components.
func ComputeNet(basic, allowance, deduction float64) float64 {
	return round2(basic + allowance - deduction)
}

// NetMatches reports whether the upstream net agrees with its components to
// the cent.
func NetMatches(p gateway.Payroll) bool {
	return math.Abs(ComputeNet(p.BasicSalary, p.Allowance, p.Deduction)-p.NetSalary) < 0.005
}

func Summarize(records []gateway.Payroll) Summary {
	var s Summary
	for _, p := range records {
		s.Months++
		s.BasicSalary += p.BasicSalary
		s.Allowance += p.Allowance
		s.Deduction += p.Deduction
		s.NetSalary += p.NetSalary
	}
	s.BasicSalary = round2(s.BasicSalary)
	s.Allowance = round2(s.Allowance)
	s.Deduction = round2(s.Deduction)
	s.NetSalary = round2(s.NetSalary)
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
