package scene

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/seqsense/pcgol/pc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slrm-camera/internal/mathutil"
	"slrm-camera/internal/tensor"
)

// writePCD writes a binary x/y/z PCD file.
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

func TestLoadCloud(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.pcd")
	writePCD(t, p, [][3]float32{{1, 2, 3}, {-4, 5, -6}})

	pts, err := LoadCloud(p)
	require.NoError(t, err)
	assert.Equal(t, [][4]float32{{1, 2, 3, 1}, {-4, 5, -6, 1}}, pts)

	_, err = LoadCloud(filepath.Join(t.TempDir(), "missing.pcd"))
	assert.Error(t, err)
}

func TestParseAndLoadPoints(t *testing.T) {
	dir := t.TempDir()
	writePCD(t, filepath.Join(dir, "a.pcd"), [][3]float32{{0, 0, -1}, {1, 1, -2}})
	writePCD(t, filepath.Join(dir, "b.pcd"), [][3]float32{{2, 2, -3}, {3, 3, -4}})
	writePCD(t, filepath.Join(dir, "c.pcd"), [][3]float32{{2, 2, -3}})

	list := filepath.Join(dir, "scenes.yaml")
	require.NoError(t, os.WriteFile(list, []byte(`
scenes:
  - name: pair
    clouds: [a.pcd, b.pcd]
    ortho_scales: [2, 4]
  - clouds: [a.pcd]
  - name: empty
  - name: ragged
    clouds: [a.pcd, c.pcd]
`), 0644))

	scenes, err := Parse(list)
	require.NoError(t, err)
	require.Len(t, scenes, 3)
	assert.Equal(t, "pair", scenes[0].Name)
	assert.Equal(t, filepath.Join(dir, "a.pcd"), scenes[0].Clouds[0])
	assert.Equal(t, "1", scenes[1].Name)
	assert.Equal(t, 2, scenes[0].Len())

	points, scales, err := LoadPoints(scenes[0], tensor.Host)
	require.NoError(t, err)
	assert.Equal(t, [3]int{2, 2, 4}, points.Shape())
	assert.Equal(t, mathutil.Vec4{3, 3, -4, 1}, points.At(1, 1))
	assert.Equal(t, []float32{2, 4}, scales.Data)

	_, scales, err = LoadPoints(scenes[1], tensor.Host)
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, scales.Data)

	_, _, err = LoadPoints(scenes[2], tensor.Host)
	assert.ErrorIs(t, err, tensor.ErrShape)
}

func TestParseScaleMismatch(t *testing.T) {
	list := filepath.Join(t.TempDir(), "scenes.yaml")
	require.NoError(t, os.WriteFile(list, []byte(`
scenes:
  - name: bad
    clouds: [a.pcd, b.pcd]
    ortho_scales: [2]
`), 0644))
	_, err := Parse(list)
	assert.Error(t, err)
}

func TestParseRejectsUnsafeNames(t *testing.T) {
	tests := map[string]string{
		"ParentDir":  `".."`,
		"Escape":     `"../x"`,
		"Nested":     `"a/b"`,
		"Backslash":  `'a\b'`,
		"CurrentDir": `"."`,
	}
	for name, yamlName := range tests {
		t.Run(name, func(t *testing.T) {
			list := filepath.Join(t.TempDir(), "scenes.yaml")
			body := "scenes:\n  - name: " + yamlName + "\n    clouds: [a.pcd]\n"
			require.NoError(t, os.WriteFile(list, []byte(body), 0644))
			_, err := Parse(list)
			assert.ErrorContains(t, err, "invalid name")
		})
	}

	list := filepath.Join(t.TempDir(), "scenes.yaml")
	require.NoError(t, os.WriteFile(list, []byte("scenes:\n  - name: a..b\n    clouds: [a.pcd]\n"), 0644))
	scenes, err := Parse(list)
	require.NoError(t, err)
	require.Len(t, scenes, 1)
	assert.Equal(t, "a..b", scenes[0].Name)
}

func TestWriteClip(t *testing.T) {
	points, err := tensor.FromSlices(tensor.Host,
		[][4]float32{{1, 2, 3, 4}, {5, 6, 7, 8}},
		[][4]float32{{-1, -2, -3, -4}, {0.5, 0.25, 0.125, 1}},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteClip(&buf, points, 1))

	pp, err := pc.Unmarshal(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z", "w"}, pp.Fields)
	assert.Equal(t, 2, pp.Points)

	it, err := pp.Vec3Iterator()
	require.NoError(t, err)
	var got [][3]float32
	for ; it.IsValid(); it.Incr() {
		v := it.Vec3()
		got = append(got, [3]float32{v[0], v[1], v[2]})
	}
	assert.Equal(t, [][3]float32{{-1, -2, -3}, {0.5, 0.25, 0.125}}, got)

	// w is the last float of each 16 byte record
	w := math.Float32frombits(binary.LittleEndian.Uint32(pp.Data[16+12:]))
	assert.Equal(t, float32(1), w)
}
