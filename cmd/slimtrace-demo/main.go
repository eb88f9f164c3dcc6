// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command slimtrace-demo is a non-interactive CLI driver for the slimtrace
// library (§1 Non-goals exclude any windowed/interactive tool): it builds
// or loads a scene, renders one frame, and writes a PNG. Grounded on the
// pack's cmd/trace driver (flag-parsed width/height/out/samples, baked
// scene loaded from disk, final image written with image/png) and on the
// teacher's eg/rt.go for the render-then-display structure.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/gazed/slimtrace/asset"
	"github.com/gazed/slimtrace/canvas"
	"github.com/gazed/slimtrace/color"
	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/mesh"
	"github.com/gazed/slimtrace/raytracer"
	"github.com/gazed/slimtrace/scene"
)

func main() {
	width := flag.Int("width", 512, "image width in pixels")
	height := flag.Int("height", 512, "image height in pixels")
	out := flag.String("out", "slimtrace.png", "output PNG path")
	configPath := flag.String("config", "", "renderer config YAML path (optional, uses defaults if omitted)")
	meshPath := flag.String("mesh", "", "native mesh file to load in place of the built-in demo scene (optional)")
	antialias := flag.Bool("antialias", true, "render at 2x supersampling and box-downsample to width x height")
	flag.Parse()

	cfg := scene.DefaultRendererConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			log.Fatalf("slimtrace-demo: %v", err)
		}
		cfg = loaded
	}

	sc, cam, err := buildScene(*meshPath)
	if err != nil {
		log.Fatalf("slimtrace-demo: %v", err)
	}

	cv := canvas.New(*width, *height, *antialias)
	raytracer.Render(sc, cam, cv, cfg)

	if err := writePNG(*out, cv); err != nil {
		log.Fatalf("slimtrace-demo: %v", err)
	}
	fmt.Printf("wrote %s (%dx%d)\n", *out, *width, *height)
}

func loadConfig(path string) (scene.RendererConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return scene.RendererConfig{}, fmt.Errorf("opening renderer config: %w", err)
	}
	defer f.Close()
	return scene.LoadConfigYAML(f)
}

// buildScene returns the requested mesh rendered alone on a camera looking
// down its +Z axis, or (with no mesh path) the built-in demo scene: a
// Lambert sphere over a plain grey Lambert floor quad, lit by one
// directional light, matching spec.md §8 scenario 1's setup.
func buildScene(meshPath string) (*scene.Scene, scene.Camera, error) {
	cam := scene.Camera{Rotation: lin.QI, FocalLength: 1}

	if meshPath != "" {
		f, err := os.Open(meshPath)
		if err != nil {
			return nil, cam, fmt.Errorf("opening mesh file: %w", err)
		}
		defer f.Close()
		m, err := asset.LoadMesh(f)
		if err != nil {
			return nil, cam, fmt.Errorf("loading mesh: %w", err)
		}

		geoms := []scene.Geometry{
			{Transform: lin.Transform{Position: lin.Vec3{Z: 5}, Rotation: lin.QI, Scale: lin.V3(1)}, Type: scene.TypeMesh, Flags: scene.Visible | scene.Shadowing},
		}
		mat := scene.Material{Albedo: lin.V3(0.7), Roughness: 1, BRDF: scene.Lambert}
		sc := scene.New(geoms, demoLights(), []scene.Material{mat}, nil, []*mesh.Mesh{m}, []scene.Camera{cam})
		return sc, cam, nil
	}

	sphere := scene.Geometry{
		Transform:  lin.Transform{Position: lin.Vec3{Z: 5}, Rotation: lin.QI, Scale: lin.V3(1)},
		Type:       scene.TypeSphere,
		MaterialID: 0,
		Flags:      scene.Visible | scene.Shadowing,
	}
	floor := scene.Geometry{
		Transform:  lin.Transform{Position: lin.Vec3{Y: -1, Z: 5}, Rotation: lin.QI, Scale: lin.Vec3{X: 20, Y: 1, Z: 20}},
		Type:       scene.TypeQuad,
		MaterialID: 1,
		Flags:      scene.Visible | scene.Shadowing,
	}
	materials := []scene.Material{
		{Albedo: lin.V3(0.7), Roughness: 1, BRDF: scene.Lambert},
		{Albedo: lin.Vec3{X: 0.6, Y: 0.6, Z: 0.65}, Roughness: 1, BRDF: scene.Lambert},
	}
	sc := scene.New([]scene.Geometry{sphere, floor}, demoLights(), materials, nil, nil, []scene.Camera{cam})
	return sc, cam, nil
}

func demoLights() []scene.Light {
	return []scene.Light{
		{Color: lin.V3(1), PositionOrDirection: lin.Vec3{X: -0.3, Y: -1, Z: 0.2}.Normalized(), Intensity: 1, Directional: true},
	}
}

func writePNG(path string, cv *canvas.Canvas) error {
	colors, _ := cv.Resolve()
	img := color.ToNRGBA(cv.Width, cv.Height, func(x, y int) color.Color {
		return colors[y*cv.Width+x]
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
