package payroll

import (
	"testing"

	"emsconsole/internal/gateway"
)

func TestComputeNet(t *testing.T) {
	if net := ComputeNet(1000, 250, 100); net != 1150 {
		t.Fatalf("expected net 1150, got %v", net)
	}
	if net := ComputeNet(0.1, 0.2, 0); net != 0.3 {
		t.Fatalf("expected rounding to cents, got %v", net)
	}
}

func TestNetMatches(t *testing.T) {
	ok := gateway.Payroll{BasicSalary: 1000, Allowance: 200, Deduction: 50, NetSalary: 1150}
	if !NetMatches(ok) {
		t.Fatal("expected matching net")
	}
	ok.NetSalary = 1100
	if NetMatches(ok) {
		t.Fatal("expected mismatch")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]gateway.Payroll{
		{BasicSalary: 1000, Allowance: 100, Deduction: 50, NetSalary: 1050},
		{BasicSalary: 1000, Allowance: 150.5, Deduction: 25, NetSalary: 1125.5},
	})
	if s.Months != 2 || s.NetSalary != 2175.5 || s.Allowance != 250.5 {
		t.Fatalf("unexpected summary %+v", s)
	}
}
