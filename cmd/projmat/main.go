package main

import (
	"flag"
	"fmt"
	"os"

	"slrm-camera/internal/camera"
	"slrm-camera/internal/mathutil"
	"slrm-camera/internal/tensor"
)

func main() {
	kindFlag := flag.String("camera", "perspective", "Camera model: perspective or orthogonal")
	fovy := flag.Float64("fovy", camera.DefaultFovY, "Vertical field of view in degrees")
	scale := flag.Float64("scale", 1, "Ortho scale used for the sample projection")
	flag.Parse()

	kind, err := camera.ParseKind(*kindFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cam, err := camera.New(camera.Config{Kind: kind, FovY: *fovy, Device: tensor.Host})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Camera: %s\n", cam.Kind())
	m := cam.Matrix()
	for r := 0; r < 4; r++ {
		row := m.Row(r)
		fmt.Printf("  [%+12.6f %+12.6f %+12.6f %+12.6f]\n", row[0], row[1], row[2], row[3])
	}

	// Remaining args are sample points "x,y,z"; the origin and a point
	// one unit ahead are always shown.
	samples := [][4]float32{{0, 0, 0, 1}, {0, 0, -1, 1}}
	for _, arg := range flag.Args() {
		var x, y, z float32
		if _, err := fmt.Sscanf(arg, "%g,%g,%g", &x, &y, &z); err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %q: %v\n", arg, err)
			continue
		}
		samples = append(samples, mathutil.Point(x, y, z))
	}

	pts, err := tensor.FromSlices(tensor.Host, samples)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	clip, err := cam.Project(pts, tensor.NewScales(tensor.Host, float32(*scale)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Samples (camera → clip → ndc):")
	ndc := tensor.PerspectiveDivide(clip)
	for i := range samples {
		in, c, n := pts.At(0, i), clip.At(0, i), ndc.At(0, i)
		fmt.Printf("  (%g, %g, %g) → (%g, %g, %g, %g) → (%g, %g, %g)\n",
			in[0], in[1], in[2], c[0], c[1], c[2], c[3], n[0], n[1], n[2])
	}
}
