package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/spheresim/internal/engine"
	"github.com/san-kum/spheresim/internal/manifold"
	"github.com/san-kum/spheresim/internal/storage"
)

func TestResolveConfigStepsPerCommandBinding(t *testing.T) {
	// Commands may bind --steps to their own variable (sweep does); the
	// resolved config must carry the value from the command's flag set.
	var local int
	cmd := &cobra.Command{Use: "local-steps"}
	cmd.Flags().IntVar(&local, "steps", 200, "steps per sweep point")

	if err := cmd.Flags().Set("steps", "350"); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Steps != 350 {
		t.Errorf("expected steps 350 from the command's own flag, got %d", cfg.Steps)
	}
}

func TestExportRunWithoutOptionalArtifacts(t *testing.T) {
	runsDir := t.TempDir()
	st := storage.New(runsDir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	cfg := engine.DefaultConfig()
	cfg.Particles = 2

	final := manifold.NewField(2, 3)
	final[0][0] = 1.0
	final[1][1] = 1.0
	result := &engine.Result{
		Trajectory: []manifold.Field{final},
		Steps:      1,
		Metrics:    map[string]float64{},
	}

	// No gram or alignment artifacts saved.
	runID, err := st.Save(cfg, result, nil, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	origData, origOut := dataDir, outDir
	dataDir, outDir = runsDir, t.TempDir()
	defer func() { dataDir, outDir = origData, origOut }()

	if err := exportRun(&cobra.Command{}, []string{runID}); err != nil {
		t.Fatalf("export without gram/alignment failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, runID+".json")); err != nil {
		t.Errorf("export file not written: %v", err)
	}
}
