package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/mortgo/internal/breakeven"
	"github.com/rgehrsitz/mortgo/internal/compare"
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/rgehrsitz/mortgo/internal/output"
	"github.com/shopspring/decimal"
)

const exampleScenarios = "../../test/testdata/example_scenarios.yaml"

func executeCommand(args ...string) (string, error) {
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func decodeReport(t *testing.T, out string) output.Report {
	t.Helper()
	var report output.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("Failed to decode report: %v\n%s", err, out)
	}
	return report
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "mortgo" {
		t.Errorf("Expected root command use to be 'mortgo', got '%s'", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	expectedCommands := []string{"calculate", "compare", "solve", "validate", "serve", "version"}

	cmd := rootCmd.Commands()
	for _, expectedCmd := range expectedCommands {
		found := false
		for _, c := range cmd {
			if c.Name() == expectedCmd {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected command '%s' to be registered with root command", expectedCmd)
		}
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"debug", "log-level", "log-format"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag --%s", name)
		}
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	if _, err := executeCommand("invalid-command"); err == nil {
		t.Error("Expected error for invalid command")
	}
}

func TestRootCommand_InvalidFlag(t *testing.T) {
	if _, err := executeCommand("--invalid-flag"); err == nil {
		t.Error("Expected error for invalid flag")
	}
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	if _, err := executeCommand("version", "--log-level", "loud"); err == nil {
		t.Error("Expected error for invalid log level")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "mortgo "+version) {
		t.Errorf("Expected version output, got:\n%s", out)
	}
	if !strings.Contains(out, "commit: "+commit) {
		t.Errorf("Expected commit in version output, got:\n%s", out)
	}
}

func TestCalculate_DefaultLoan(t *testing.T) {
	out, err := executeCommand("calculate")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, want := range []string{
		"LOAN PARAMETERS",
		"¥35,000,000",
		"Equal installment",
		"Fixed Payment:       ¥91,242",
		"Total Interest:      ¥3,321,451",
		"Total Payment:       ¥38,321,451",
		"... 24 of 420 months shown",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCalculate_JSONAllMonths(t *testing.T) {
	out, err := executeCommand("calculate", "--format", "json", "--months", "0", "--yearly")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	report := decodeReport(t, out)
	if report.TotalRows != 420 || len(report.Rows) != 420 {
		t.Errorf("Expected all 420 rows, got %d of %d", len(report.Rows), report.TotalRows)
	}
	if len(report.Yearly) != 35 {
		t.Errorf("Expected 35 yearly rows, got %d", len(report.Yearly))
	}
	if !report.Summary.TotalInterest.Equal(decimal.NewFromInt(3321451)) {
		t.Errorf("Expected total interest 3321451, got %s", report.Summary.TotalInterest)
	}
	if !report.Rows[419].Balance.IsZero() {
		t.Errorf("Expected zero final balance, got %s", report.Rows[419].Balance)
	}
}

func TestCalculate_EqualPrincipal(t *testing.T) {
	out, err := executeCommand("calculate", "--method", "linear", "--format", "json", "--months", "1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	report := decodeReport(t, out)
	if report.Parameters.Method != domain.EqualPrincipal {
		t.Errorf("Expected equal principal, got %s", report.Parameters.Method)
	}
	if !report.Summary.FirstMonthPayment.Equal(decimal.NewFromInt(98645)) {
		t.Errorf("Expected first payment 98645, got %s", report.Summary.FirstMonthPayment)
	}
	if !report.Summary.TotalInterest.Equal(decimal.NewFromInt(3223086)) {
		t.Errorf("Expected total interest 3223086, got %s", report.Summary.TotalInterest)
	}
	if len(report.Rows) != 1 {
		t.Errorf("Expected 1 row, got %d", len(report.Rows))
	}
}

func TestCalculate_Bonus(t *testing.T) {
	out, err := executeCommand("calculate",
		"--years", "10", "--bonus", "--bonus-amount", "500", "--format", "json", "--months", "6")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	report := decodeReport(t, out)
	if !report.MonthlyPayment.Equal(decimal.NewFromInt(256675)) {
		t.Errorf("Expected monthly payment 256675, got %s", report.MonthlyPayment)
	}
	if !report.BonusPayment.Equal(decimal.NewFromInt(256948)) {
		t.Errorf("Expected bonus payment 256948, got %s", report.BonusPayment)
	}
	if !report.Rows[5].IsBonusMonth || !report.Rows[5].Payment.Equal(decimal.NewFromInt(513623)) {
		t.Errorf("Expected month 6 bonus payment 513623, got %+v", report.Rows[5])
	}
}

func TestCalculate_ScenarioFile(t *testing.T) {
	out, err := executeCommand("calculate", exampleScenarios)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, title := range []string{"FLAT 35", "FLAT 35 EQUAL PRINCIPAL", "10 YEARS WITH BONUS", "ZERO RATE"} {
		if !strings.Contains(out, title) {
			t.Errorf("Expected output for %s", title)
		}
	}
}

func TestCalculate_NamedScenario(t *testing.T) {
	out, err := executeCommand("calculate", exampleScenarios, "--scenario", "10 years with bonus", "--format", "json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	report := decodeReport(t, out)
	if report.Name != "10 years with bonus" {
		t.Errorf("Expected scenario name, got %q", report.Name)
	}
	if !report.Parameters.BonusPrincipal.Equal(decimal.NewFromInt(5000000)) {
		t.Errorf("Expected bonus principal 5000000, got %s", report.Parameters.BonusPrincipal)
	}

	if _, err := executeCommand("calculate", exampleScenarios, "--scenario", "missing"); err == nil {
		t.Error("Expected error for unknown scenario")
	}
}

func TestCalculate_CSV(t *testing.T) {
	out, err := executeCommand("calculate", "--format", "csv", "--months", "3")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Errorf("Expected header and 3 rows, got %d lines:\n%s", len(lines), out)
	}
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		invalidParam bool
	}{
		{name: "unknown format", args: []string{"calculate", "--format", "pdf"}},
		{name: "bad amount", args: []string{"calculate", "--amount", "lots"}},
		{name: "bad rate", args: []string{"calculate", "--rate", "x"}},
		{name: "bonus amount without bonus", args: []string{"calculate", "--bonus-amount", "100"}},
		{name: "zero term", args: []string{"calculate", "--years", "0"}, invalidParam: true},
		{name: "negative rate", args: []string{"calculate", "--rate", "-1"}, invalidParam: true},
		{name: "unknown method", args: []string{"calculate", "--method", "balloon"}, invalidParam: true},
		{name: "bonus exceeds loan", args: []string{"calculate", "--bonus", "--bonus-amount", "4000"}, invalidParam: true},
		{name: "missing file", args: []string{"calculate", "missing.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(tt.args...)
			if err == nil {
				t.Fatal("Expected error")
			}
			if tt.invalidParam && !errors.Is(err, domain.ErrInvalidParameter) {
				t.Errorf("Expected invalid parameter error, got %v", err)
			}
		})
	}
}

func TestCompare_DefaultMethods(t *testing.T) {
	out, err := executeCommand("compare")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"LOAN COMPARISON", "Base Scenario: Loan", "Loan_equal_principal", "RECOMMENDATIONS"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCompare_TemplatesJSON(t *testing.T) {
	out, err := executeCommand("compare", "--with", "rate_plus_1,term_minus_5", "--format", "json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var compSet compare.ComparisonSet
	if err := json.Unmarshal([]byte(out), &compSet); err != nil {
		t.Fatalf("Failed to decode comparison: %v", err)
	}
	if len(compSet.AlternativeResults) != 2 {
		t.Fatalf("Expected 2 alternatives, got %d", len(compSet.AlternativeResults))
	}
	if !compSet.AlternativeResults[0].InterestDiffFromBase.IsPositive() {
		t.Error("Expected a higher rate to increase total interest")
	}
	if compSet.AlternativeResults[1].MonthsDiffFromBase != -60 {
		t.Errorf("Expected a 60 month shorter term, got %d", compSet.AlternativeResults[1].MonthsDiffFromBase)
	}
}

func TestCompare_Transform(t *testing.T) {
	out, err := executeCommand("compare", "--transform", "adjust_rate:delta=0.25", "--format", "csv")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "adjust_rate:delta=0.25") {
		t.Errorf("Expected transform alternative in output, got:\n%s", out)
	}

	if _, err := executeCommand("compare", "--transform", "adjust_rate:delta"); err == nil {
		t.Error("Expected error for malformed transform")
	}
}

func TestCompare_ScenarioFile(t *testing.T) {
	out, err := executeCommand("compare", exampleScenarios,
		"--base", "Flat 35", "--scenarios", "Flat 35 equal principal", "--format", "compact")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "Flat 35 equal principal") {
		t.Errorf("Expected alternative scenario in output, got:\n%s", out)
	}

	out, err = executeCommand("compare", exampleScenarios, "--with", "no_bonus", "--base", "10 years with bonus")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "Configuration: "+exampleScenarios) {
		t.Errorf("Expected configuration path in output, got:\n%s", out)
	}
}

func TestCompare_ListTemplates(t *testing.T) {
	out, err := executeCommand("compare", "--list-templates")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, name := range []string{"equal_principal", "rate_plus_1", "term_minus_5", "no_bonus"} {
		if !strings.Contains(out, name) {
			t.Errorf("Expected template %s in list", name)
		}
	}
}

func TestCompare_Errors(t *testing.T) {
	tests := [][]string{
		{"compare", "--with", "unknown_template"},
		{"compare", "--scenarios", "Flat 35"},
		{"compare", exampleScenarios, "--base", "missing"},
		{"compare", "--format", "xml"},
	}
	for _, args := range tests {
		if _, err := executeCommand(args...); err == nil {
			t.Errorf("Expected error for %v", args)
		}
	}
}

func TestSolve_AllTargets(t *testing.T) {
	out, err := executeCommand("solve", "--budget", "92000")
	if err != nil {
		t.Fatalf("Unexpected error: %v\n%s", err, out)
	}
	for _, want := range []string{"AFFORDABILITY BY TARGET", "Monthly Budget: ¥92,000", "RECOMMENDATIONS", "The shortest term that fits is 35 years"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
}

func TestSolve_TermJSON(t *testing.T) {
	out, err := executeCommand("solve", "--budget", "92000", "--target", "term", "--format", "json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var result breakeven.OptimizationResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Failed to decode result: %v\n%s", err, out)
	}
	if !result.Success || result.Parameters.TermYears != 35 {
		t.Errorf("Expected 35 year term, got success=%v term=%d", result.Success, result.Parameters.TermYears)
	}
	if result.PeakPayment.GreaterThan(decimal.NewFromInt(92000)) {
		t.Errorf("Peak payment %s exceeds budget", result.PeakPayment)
	}
}

func TestSolve_Infeasible(t *testing.T) {
	out, err := executeCommand("solve", "--budget", "40000", "--target", "rate", "--amount", "1200", "--years", "20")
	if err == nil {
		t.Fatal("Expected error for a budget that cannot be met")
	}
	if !strings.Contains(out, "Budget cannot be met") {
		t.Errorf("Expected the result table before the error\n%s", out)
	}
}

func TestSolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing budget", []string{"solve"}},
		{"bad budget", []string{"solve", "--budget", "lots"}},
		{"zero budget", []string{"solve", "--budget", "0", "--target", "term"}},
		{"unknown target", []string{"solve", "--budget", "92000", "--target", "ss_age"}},
		{"unknown format", []string{"solve", "--budget", "92000", "--format", "html"}},
		{"invalid loan", []string{"solve", "--budget", "92000", "--years", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := executeCommand(tt.args...); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := executeCommand("validate", exampleScenarios)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "is valid") || !strings.Contains(out, "Zero rate") {
		t.Errorf("Unexpected validate output:\n%s", out)
	}

	if _, err := executeCommand("validate"); err == nil {
		t.Error("Expected error without a file argument")
	}
	if _, err := executeCommand("validate", "missing.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestServeCommand_InvalidConfig(t *testing.T) {
	if _, err := executeCommand("serve", "--config", "missing.yaml", "--env-file", ""); err == nil {
		t.Error("Expected error for missing service config")
	}
}

func TestFileExists(t *testing.T) {
	if !fileExists(exampleScenarios) {
		t.Error("Expected example scenarios to exist")
	}
	if fileExists("non_existing_file.txt") {
		t.Error("Expected non_existing_file.txt to not exist")
	}
}
