package config_test

import (
	"os"
	"testing"
)

// unsetenv removes variables for the duration of the test. t.Setenv must
// have been called for each of them so they are restored afterwards.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unset %s: %v", k, err)
		}
	}
}
