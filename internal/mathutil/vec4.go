package mathutil

// Vec4 is a homogeneous 4-component vector (x, y, z, w).
type Vec4 [4]float32

// Point returns the homogeneous point (x, y, z, 1).
func Point(x, y, z float32) Vec4 {
	return Vec4{x, y, z, 1}
}
