package helper

import (
	"os"
	"testing"
)

func TestGetEnvVar(t *testing.T) {
	key := "SL_TEST_ENV_VAR"
	_ = os.Unsetenv(key)
	// Test 1, missing optional variable.
	v, err := GetEnvVar(key, false)
	if v != "" || err != nil {
		t.Fatalf("expected empty value and nil error; got %q, %v", v, err)
	}
	// Test 2, missing mandatory variable.
	if _, err := GetEnvVar(key, true); err == nil {
		t.Fatal("expected an error for a missing mandatory variable")
	}
	// Test 3, set variable.
	_ = os.Setenv(key, "abc")
	v, err = GetEnvVar(key, true)
	if v != "abc" || err != nil {
		t.Fatalf("expected abc and nil error; got %q, %v", v, err)
	}
	_ = os.Unsetenv(key)
}

func TestReadValueFromEnv(t *testing.T) {
	key := "SL_TEST_READ_VALUE"
	_ = os.Unsetenv(key)
	var v string
	if err := ReadValueFromEnv(key, &v); err == nil {
		t.Fatal("expected an error for an unset variable")
	}
	_ = os.Setenv(key, "xyz")
	if err := ReadValueFromEnv(key, &v); err != nil {
		t.Fatal(err)
	}
	if v != "xyz" {
		t.Fatal("unexpected value: ", v)
	}
	// The default applies only when the variable is unset.
	if got := ReadValueFromEnvWithDefault(key, "fallback"); got != "xyz" {
		t.Fatal("unexpected value: ", got)
	}
	_ = os.Unsetenv(key)
	if got := ReadValueFromEnvWithDefault(key, "fallback"); got != "fallback" {
		t.Fatal("unexpected value: ", got)
	}
}

func TestGetDsnEnvVarName(t *testing.T) {
	if got := GetDsnEnvVarName("target"); got != "SL_TARGET_DSN" {
		t.Fatal("unexpected env var name: ", got)
	}
	if got := GetDsnEnvVarName(" TARGET "); got != "SL_TARGET_DSN" {
		t.Fatal("unexpected env var name: ", got)
	}
}
