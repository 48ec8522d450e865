package astrocore

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
)

var (
	cfgMu     sync.Mutex
	cfgLoaded bool
	cfg       Config
)

// Config is the process-wide configuration for this package, loaded once
// from a conf.toml pointed to by the ASTROCORE_CONFIG environment variable,
// in the same convention the teacher used for SMD_CONFIG.
type Config struct {
	// VSOP87 selects the meeus analytic planetary-position series as the
	// Ephemeris provider. When false, an external Ephemeris implementation
	// must be supplied to the Scenario explicitly.
	VSOP87 bool
	// VSOP87Dir is the directory meeus/planetposition loads its binary
	// VSOP87 series files from.
	VSOP87Dir string
	// SGP4GravityModel selects the gravity-constant set go-satellite uses
	// ("wgs72", "wgs72old", "wgs84").
	SGP4GravityModel string
	// OutputDir is where the export writers (export.go) place their
	// output files.
	OutputDir string
}

func (c Config) String() string {
	return fmt.Sprintf("[astrocore:config] VSOP87=%v dir=%s sgp4=%s out=%s", c.VSOP87, c.VSOP87Dir, c.SGP4GravityModel, c.OutputDir)
}

// smdConfig returns the process configuration, loading it from disk on
// first use. Named to match the teacher's lowercase accessor convention.
func smdConfig() Config {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	if cfgLoaded {
		return cfg
	}
	confPath := os.Getenv("ASTROCORE_CONFIG")
	if confPath == "" {
		panic("environment variable `ASTROCORE_CONFIG` is missing or empty")
	}
	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("%s/conf.toml not found: %s", confPath, err))
	}

	viper.SetDefault("ephemeris.vsop87", true)
	viper.SetDefault("sgp4.gravity_model", "wgs84")
	viper.SetDefault("general.output_path", ".")

	cfg = Config{
		VSOP87:           viper.GetBool("ephemeris.vsop87"),
		VSOP87Dir:        viper.GetString("ephemeris.vsop87_dir"),
		SGP4GravityModel: viper.GetString("sgp4.gravity_model"),
		OutputDir:        viper.GetString("general.output_path"),
	}
	cfgLoaded = true
	return cfg
}

// ResetConfigForTest clears the cached configuration so tests can reload it
// under a different ASTROCORE_CONFIG. Not for use outside of tests.
func ResetConfigForTest() {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfgLoaded = false
}
