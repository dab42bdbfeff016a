package scene

// Scene is one batch of point clouds projected together.
type Scene struct {
	Name   string
	Clouds []string // PCD paths, one per batch entry
	// OrthoScales holds one extent per cloud for orthogonal cameras.
	// Empty means 1 for every cloud.
	OrthoScales []float32
}

// Len returns the batch size of the scene.
func (s Scene) Len() int {
	return len(s.Clouds)
}
