package astrocore

import (
	"os"
	"testing"
)

func TestSmdConfigPanicsWithoutEnvVar(t *testing.T) {
	old := os.Getenv("ASTROCORE_CONFIG")
	os.Unsetenv("ASTROCORE_CONFIG")
	ResetConfigForTest()
	defer func() {
		os.Setenv("ASTROCORE_CONFIG", old)
		ResetConfigForTest()
	}()

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected smdConfig to panic when ASTROCORE_CONFIG is unset")
		}
	}()
	smdConfig()
}
