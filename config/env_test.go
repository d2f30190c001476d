package config

import (
	"strings"
	"testing"
)

func TestEnvAliases(t *testing.T) {
	t.Setenv("CFG_TEST_LEGACY", "legacy-value")

	if got := Env("CFG_TEST_PRIMARY", "CFG_TEST_LEGACY"); got != "legacy-value" {
		t.Errorf("expected legacy alias value, got %q", got)
	}

	t.Setenv("CFG_TEST_PRIMARY", "primary-value")
	if got := Env("CFG_TEST_PRIMARY", "CFG_TEST_LEGACY"); got != "primary-value" {
		t.Errorf("expected primary value to win, got %q", got)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("CFG_TEST_BOOL", "true")
	if !EnvBool(false, "CFG_TEST_BOOL") {
		t.Error("expected true")
	}

	t.Setenv("CFG_TEST_BOOL", "not-a-bool")
	if !EnvBool(true, "CFG_TEST_BOOL") {
		t.Error("expected fallback for unparseable value")
	}

	if EnvBool(false, "CFG_TEST_UNSET_BOOL") {
		t.Error("expected fallback for unset variable")
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("CFG_TEST_INT", "587")
	if got := EnvInt(25, "CFG_TEST_INT"); got != 587 {
		t.Errorf("expected 587, got %d", got)
	}
	if got := EnvInt(25, "CFG_TEST_UNSET_INT"); got != 25 {
		t.Errorf("expected fallback 25, got %d", got)
	}
}

func TestRequireEnv(t *testing.T) {
	t.Setenv("CFG_TEST_REQ", "value")
	v, err := RequireEnv("CFG_TEST_REQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "value" {
		t.Errorf("expected 'value', got %q", v)
	}

	_, err = RequireEnv("CFG_TEST_REQ_MISSING")
	if err == nil {
		t.Fatal("expected error for missing variable")
	}
	want := "Missing required environment variable: CFG_TEST_REQ_MISSING"
	if got := err.Error(); !strings.Contains(got, want) {
		t.Errorf("expected error containing %q, got %q", want, got)
	}
}

func TestCheckEnv(t *testing.T) {
	t.Setenv("CFG_TEST_A", "set")

	report := CheckEnv(
		[]string{"CFG_TEST_A"},
		[]string{"CFG_TEST_B"},
		[]string{"CFG_TEST_C", "CFG_TEST_C_LEGACY"},
	)
	if report.OK() {
		t.Error("expected report with missing variables")
	}
	if len(report.Missing) != 2 {
		t.Fatalf("expected 2 missing, got %v", report.Missing)
	}
	if report.Missing[0] != "CFG_TEST_B" || report.Missing[1] != "CFG_TEST_C" {
		t.Errorf("expected canonical names in order, got %v", report.Missing)
	}

	t.Setenv("CFG_TEST_C_LEGACY", "alias-set")
	report = CheckEnv([]string{"CFG_TEST_A"}, []string{"CFG_TEST_C", "CFG_TEST_C_LEGACY"})
	if !report.OK() {
		t.Errorf("expected OK report when aliases satisfy requirements, got %v", report.Missing)
	}
}

func TestEnvReportAddInvalid(t *testing.T) {
	var r EnvReport
	r.AddInvalid("CFG_TEST_PORT", "must be numeric")
	if r.OK() {
		t.Error("expected report to not be OK")
	}
	if r.Invalid["CFG_TEST_PORT"] != "must be numeric" {
		t.Errorf("expected invalid reason recorded, got %v", r.Invalid)
	}
}
