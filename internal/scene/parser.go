package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlSceneList matches the scene list schema.
type yamlSceneList struct {
	Scenes []yamlScene `yaml:"scenes"`
}

type yamlScene struct {
	Name        string    `yaml:"name"`
	Clouds      []string  `yaml:"clouds"`
	OrthoScales []float32 `yaml:"ortho_scales"`
}

// Parse reads a scene list and returns every scene with at least one
// cloud. Cloud paths are resolved against the list's directory.
func Parse(path string) ([]Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	var list yamlSceneList
	if err := yaml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	var scenes []Scene
	for i, s := range list.Scenes {
		if len(s.Clouds) == 0 {
			continue
		}
		if len(s.OrthoScales) != 0 && len(s.OrthoScales) != len(s.Clouds) {
			return nil, fmt.Errorf("scene: %s: scene %d has %d clouds but %d ortho scales",
				path, i, len(s.Clouds), len(s.OrthoScales))
		}
		name := s.Name
		if name == "" {
			name = strconv.Itoa(i)
		}
		if !validName(name) {
			return nil, fmt.Errorf("scene: %s: scene %d: invalid name %q", path, i, name)
		}
		clouds := make([]string, len(s.Clouds))
		for j, c := range s.Clouds {
			if !filepath.IsAbs(c) {
				c = filepath.Join(dir, c)
			}
			clouds[j] = c
		}
		scenes = append(scenes, Scene{
			Name:        name,
			Clouds:      clouds,
			OrthoScales: s.OrthoScales,
		})
	}

	return scenes, nil
}

// validName reports whether name can be used as a single path element
// under the output directory.
func validName(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`+"\x00")
}
