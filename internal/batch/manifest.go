package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one scene in the output manifest.
type ManifestEntry struct {
	Name    string   `json:"name"`
	Entries int      `json:"entries"`
	Images  []string `json:"images"`
	Clips   []string `json:"clips"`
	Error   string   `json:"error,omitempty"`
}

// Manifest is the document written to manifest.json.
type Manifest struct {
	Camera string          `json:"camera"`
	Matrix [4][4]float32   `json:"matrix"`
	Scenes []ManifestEntry `json:"scenes"`
}

// WriteManifest writes manifest.json describing a finished run.
func WriteManifest(path string, cfg Config, results []Result) error {
	m := Manifest{
		Camera: cfg.Camera.Kind().String(),
		Scenes: make([]ManifestEntry, len(results)),
	}
	proj := cfg.Camera.Matrix()
	for r := 0; r < 4; r++ {
		m.Matrix[r] = proj.Row(r)
	}
	for i, res := range results {
		m.Scenes[i] = ManifestEntry{
			Name:    res.Name,
			Entries: res.Entries,
			Images:  res.Images,
			Clips:   res.Clips,
			Error:   res.Error,
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
