package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"slrm-camera/internal/camera"
	"slrm-camera/internal/imageio"
	"slrm-camera/internal/postprocess"
	"slrm-camera/internal/raster"
	"slrm-camera/internal/scene"
	"slrm-camera/internal/tensor"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Camera          camera.Camera
	OutputDir       string
	Format          imageio.Format
	RenderSize      int
	Supersample     int
	PointRadius     int
	MinClusterRatio float64
	Workers         int
	// Progress is the interval between progress lines. Zero disables them.
	Progress time.Duration
}

// Result holds the outcome of processing one scene.
type Result struct {
	Name    string
	Entries int
	Images  []string // relative to OutputDir
	Clips   []string // relative to OutputDir
	Success bool
	Error   string
}

// Run processes all scenes using a worker pool.
func Run(cfg Config, scenes []scene.Scene) []Result {
	total := len(scenes)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						fmt.Printf("  [%d/%d] %.1f scenes/sec\n", p, total, float64(p)/elapsed)
					}
				}
			}
		}()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	// Worker pool
	sceneChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sceneChan {
				results[idx] = processScene(cfg, scenes[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range scenes {
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()
	close(done)

	return results
}

func processScene(cfg Config, s scene.Scene) Result {
	res := Result{Name: s.Name, Entries: s.Len()}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	points, scales, err := scene.LoadPoints(s, cfg.Camera.Device())
	if err != nil {
		return fail(err)
	}

	clip, err := cfg.Camera.Project(points, scales)
	if err != nil {
		return fail(err)
	}

	supersample := max(cfg.Supersample, 1)
	for b := 0; b < clip.Batch; b++ {
		img := raster.RenderClip(clip, b, cfg.RenderSize*supersample, cfg.PointRadius*supersample)
		if supersample > 1 {
			img = postprocess.Downsample(img, cfg.RenderSize)
		}
		img = postprocess.RemoveSmallClusters(img, cfg.MinClusterRatio)

		imgRel := filepath.Join(s.Name, fmt.Sprintf("%d%s", b, cfg.Format.Ext()))
		if err := imageio.Save(filepath.Join(cfg.OutputDir, imgRel), img, cfg.Format); err != nil {
			return fail(err)
		}
		res.Images = append(res.Images, filepath.ToSlash(imgRel))

		clipRel := filepath.Join(s.Name, fmt.Sprintf("%d.pcd", b))
		if err := writeClip(filepath.Join(cfg.OutputDir, clipRel), clip, b); err != nil {
			return fail(err)
		}
		res.Clips = append(res.Clips, filepath.ToSlash(clipRel))
	}

	res.Success = true
	return res
}

func writeClip(path string, clip *tensor.Points, b int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := scene.WriteClip(f, clip, b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
