package batch

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slrm-camera/internal/camera"
	"slrm-camera/internal/imageio"
	"slrm-camera/internal/scene"
	"slrm-camera/internal/tensor"
)

func writePCD(t *testing.T, path string, pts [][3]float32) {
	t.Helper()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "VERSION 0.7\nFIELDS x y z\nSIZE 4 4 4\nTYPE F F F\nCOUNT 1 1 1\n")
	fmt.Fprintf(&buf, "WIDTH %d\nHEIGHT 1\nVIEWPOINT 0 0 0 1 0 0 0\nPOINTS %d\nDATA binary\n", len(pts), len(pts))
	for _, p := range pts {
		for _, v := range p {
			require.NoError(t, binary.Write(&buf, binary.LittleEndian, math.Float32bits(v)))
		}
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cloud := [][3]float32{{0, 0, -2}, {0.5, 0.5, -3}, {-0.5, 0.2, -4}}
	writePCD(t, filepath.Join(dir, "a.pcd"), cloud)
	writePCD(t, filepath.Join(dir, "b.pcd"), cloud)

	scenes := []scene.Scene{
		{Name: "pair", Clouds: []string{filepath.Join(dir, "a.pcd"), filepath.Join(dir, "b.pcd")}, OrthoScales: []float32{2, 4}},
		{Name: "missing", Clouds: []string{filepath.Join(dir, "nope.pcd")}},
	}

	for _, kind := range []camera.Kind{camera.KindPerspective, camera.KindOrthogonal} {
		t.Run(kind.String(), func(t *testing.T) {
			cam, err := camera.New(camera.Config{Kind: kind, FovY: camera.DefaultFovY, Device: tensor.Host})
			require.NoError(t, err)

			out := t.TempDir()
			cfg := Config{
				Camera:      cam,
				OutputDir:   out,
				Format:      imageio.PNG,
				RenderSize:  32,
				Supersample: 2,
				PointRadius: 1,
				Workers:     2,
			}
			results := Run(cfg, scenes)
			require.Len(t, results, 2)

			ok := results[0]
			assert.True(t, ok.Success, ok.Error)
			assert.Equal(t, []string{"pair/0.png", "pair/1.png"}, ok.Images)
			assert.Equal(t, []string{"pair/0.pcd", "pair/1.pcd"}, ok.Clips)
			for _, rel := range append(ok.Images, ok.Clips...) {
				assert.FileExists(t, filepath.Join(out, rel))
			}

			assert.False(t, results[1].Success)
			assert.NotEmpty(t, results[1].Error)

			manifestPath := filepath.Join(out, "manifest.json")
			require.NoError(t, WriteManifest(manifestPath, cfg, results))
			raw, err := os.ReadFile(manifestPath)
			require.NoError(t, err)

			var m Manifest
			require.NoError(t, json.Unmarshal(raw, &m))
			assert.Equal(t, kind.String(), m.Camera)
			assert.Equal(t, cam.Matrix().Row(1), m.Matrix[1])
			require.Len(t, m.Scenes, 2)
			assert.Equal(t, 2, m.Scenes[0].Entries)
			assert.NotEmpty(t, m.Scenes[1].Error)
		})
	}
}

func TestWriteClipCreatesDir(t *testing.T) {
	clip, err := tensor.FromSlices(tensor.Host, [][4]float32{{1, 2, 3, 1}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "scene", "nested", "0.pcd")
	require.NoError(t, writeClip(path, clip, 0))
	assert.FileExists(t, path)
}
