package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"slrm-camera/internal/batch"
	"slrm-camera/internal/camera"
	"slrm-camera/internal/config"
	"slrm-camera/internal/imageio"
	"slrm-camera/internal/scene"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.yaml file")
	sceneList := flag.String("scenes", "", "Path to the scene list (YAML)")
	outputDir := flag.String("output", "", "Output directory (default: <scenes dir>/projected)")
	cameraKind := flag.String("camera", "", "Camera model: perspective or orthogonal (default: perspective)")
	fovy := flag.Float64("fovy", 0, "Vertical field of view in degrees (default: 49)")
	device := flag.String("device", "", "Compute device: cpu or accelerator-default (default: accelerator-default)")
	format := flag.String("format", "", "Image format: webp, tga or png (default: webp)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Project only the first N scenes for testing")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Camera:    *cameraKind,
		FovY:      *fovy,
		Device:    *device,
		SceneList: *sceneList,
		OutputDir: *outputDir,
		Format:    *format,
		Workers:   *workers,
	})

	if cfg.SceneList == "" {
		fmt.Fprintln(os.Stderr, "Error: no scene list. Use -scenes flag or config.yaml.")
		os.Exit(1)
	}

	camCfg, err := cfg.CameraConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cam, err := camera.New(camCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building camera: %v\n", err)
		os.Exit(1)
	}
	imgFormat, err := imageio.ParseFormat(cfg.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scenes, err := scene.Parse(cfg.SceneList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene list: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(scenes) {
		scenes = scenes[:*testN]
	}

	if len(scenes) == 0 {
		fmt.Println("No scenes to project.")
		os.Exit(0)
	}

	// Print summary
	mode := ""
	if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("Clip-space projection → %s%s\n", imgFormat, mode)
	fmt.Printf("Camera: %s, Device: %s", camCfg.Kind, cam.Device())
	if camCfg.Kind == camera.KindPerspective {
		fmt.Printf(", FovY: %.1f°", camCfg.FovY)
	}
	fmt.Println()
	fmt.Printf("Scenes: %d, Workers: %d\n", len(scenes), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		Camera:          cam,
		OutputDir:       cfg.OutputDir,
		Format:          imgFormat,
		RenderSize:      cfg.RenderSize,
		Supersample:     cfg.Supersample,
		PointRadius:     cfg.PointRadius,
		MinClusterRatio: cfg.MinClusterRatio,
		Workers:         cfg.Workers,
		Progress:        2 * time.Second,
	}

	results := batch.Run(batchCfg, scenes)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Projected: %d/%d\n", success, len(scenes))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, batchCfg, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
