package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	// Reset sticky flags that may persist Changed state across invocations
	if f := analyzeCmd.Flags(); f != nil {
		for name, def := range map[string]string{
			"output":          "",
			"small-threshold": "200",
			"max-rows":        "100000",
			"no-chart":        "false",
			"sheet-name":      "",
			"sheet-index":     "1",
		} {
			if fl := f.Lookup(name); fl != nil {
				_ = fl.Value.Set(def)
				fl.Changed = false
			}
		}
	}
	anaImagePath = ""
	anaNoChart = false
	cfg = nil
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })
	os.Setenv("HOME", home)
	return home
}

func TestCLI_AnalyzeWritesChartAndReport(t *testing.T) {
	home := setHome(t)

	csvPath := filepath.Join(home, "gas_results.csv")
	data := "Message Length,Gas Used\n10,1200\n50,3200\n100,5700\nabc-test,1500\n"
	if err := os.WriteFile(csvPath, []byte(data), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	outPath := filepath.Join(home, "chart.png")
	runCmd(t, "analyze", csvPath, "-o", outPath)

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("chart image not written: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("chart is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Fatal("chart image is empty")
	}
}

func TestCLI_AnalyzeInsufficientDataStillSucceeds(t *testing.T) {
	home := setHome(t)

	csvPath := filepath.Join(home, "gas_results.csv")
	data := "Message Length,Gas Used\n10,1200\nabc-test,1500\n"
	if err := os.WriteFile(csvPath, []byte(data), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	outPath := filepath.Join(home, "chart.png")
	runCmd(t, "analyze", csvPath, "-o", outPath)

	// One numeric row: the fit and its chart are skipped without failing.
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Fatalf("chart should not be written for a skipped fit, stat err = %v", err)
	}
}

func TestCLI_ConfigSetPersists(t *testing.T) {
	home := setHome(t)

	runCmd(t, "config", "set", "small_threshold", "150")

	cfgPath := filepath.Join(home, ".gasplot", "config.yaml")
	raw, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !bytes.Contains(raw, []byte("small_threshold: 150")) {
		t.Fatalf("config missing saved key:\n%s", raw)
	}
}
