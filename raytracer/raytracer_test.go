// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytracer

import (
	"math"
	"testing"

	"github.com/gazed/slimtrace/canvas"
	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/ray"
	"github.com/gazed/slimtrace/scene"
	"github.com/gazed/slimtrace/scenetrace"
)

func originCamera() scene.Camera {
	return scene.Camera{Rotation: lin.QI, FocalLength: 1}
}

func beautyConfig() Config {
	cfg := scene.DefaultRendererConfig()
	cfg.RenderMode = scene.Beauty
	return cfg
}

// TestRenderLambertSphereScenario reproduces spec scenario 1: a Lambert
// sphere lit by a directional light perpendicular to the camera-facing
// normal is black at dead center, and positive a few rows above center
// where the normal tilts toward the light.
func TestRenderLambertSphereScenario(t *testing.T) {
	sphere := scene.Geometry{
		Transform: lin.Transform{Position: lin.Vec3{Z: 5}, Rotation: lin.QI, Scale: lin.V3(1)},
		Type:      scene.TypeSphere,
		Flags:     scene.Visible | scene.Shadowing,
	}
	mat := scene.Material{Albedo: lin.V3(0.7), Roughness: 1, BRDF: scene.Lambert}
	sc := scene.New([]scene.Geometry{sphere}, nil, []scene.Material{mat}, nil, nil, nil)
	sc.Lights = []scene.Light{{Color: lin.V3(1), PositionOrDirection: lin.Vec3{Y: -1}, Intensity: 1, Directional: true}}

	cv := canvas.New(64, 64, false)
	Render(sc, originCamera(), cv, beautyConfig())
	colors, depths := cv.Resolve()

	center := colors[32*64+32]
	if center.X > 0.01 {
		t.Errorf("center pixel got %v want ~black (light perpendicular to normal)", center)
	}
	if d := depths[32*64+32]; math32Abs(d-4) > 0.5 {
		t.Errorf("center pixel depth got %v want ~4", d)
	}

	above := colors[16*64+32]
	if above.X <= 0 {
		t.Errorf("above-center pixel got %v want positive (normal tilts toward the light)", above)
	}
}

// TestRenderDepthModeScenario reproduces spec scenario 3: Depth mode on
// the same sphere scene reports a finite depth at center and +Inf at a
// corner that misses everything.
func TestRenderDepthModeScenario(t *testing.T) {
	sphere := scene.Geometry{
		Transform: lin.Transform{Position: lin.Vec3{Z: 5}, Rotation: lin.QI, Scale: lin.V3(1)},
		Type:      scene.TypeSphere,
		Flags:     scene.Visible | scene.Shadowing,
	}
	mat := scene.Material{Albedo: lin.V3(0.7), Roughness: 1, BRDF: scene.Lambert}
	sc := scene.New([]scene.Geometry{sphere}, nil, []scene.Material{mat}, nil, nil, nil)

	cfg := scene.DefaultRendererConfig()
	cfg.RenderMode = scene.Depth
	cv := canvas.New(64, 64, false)
	Render(sc, originCamera(), cv, cfg)
	_, depths := cv.Resolve()

	if d := depths[32*64+32]; math32Abs(d-4) > 0.5 {
		t.Errorf("center depth got %v want ~4", d)
	}
	if d := depths[0]; !math.IsInf(float64(d), 1) {
		t.Errorf("corner depth got %v want +Inf (miss)", d)
	}
}

// TestRenderUVModeScenario reproduces spec scenario 4: a quad floor seen
// from directly above maps world origin to uv (0.5, 0.5), rendered as
// color (0.5, 0.5, 1) in UVs mode.
func TestRenderUVModeScenario(t *testing.T) {
	floor := scene.Geometry{
		Transform: lin.Transform{Rotation: lin.QI, Scale: lin.Vec3{X: 40, Y: 1, Z: 40}},
		Type:      scene.TypeQuad,
		Flags:     scene.Visible,
	}
	sc := scene.New([]scene.Geometry{floor}, nil, []scene.Material{{}}, nil, nil, nil)

	lookDown := lin.AxisAngle(lin.Vec3{X: 1}, lin.PI/2)
	if lookDown.RotateVec3(lin.Vec3{Z: 1}).Y > 0 {
		lookDown = lin.AxisAngle(lin.Vec3{X: 1}, -lin.PI/2)
	}
	cam := scene.Camera{Position: lin.Vec3{Y: 10}, Rotation: lookDown, FocalLength: 1}

	cfg := scene.DefaultRendererConfig()
	cfg.RenderMode = scene.UVs
	cv := canvas.New(64, 64, false)
	Render(sc, cam, cv, cfg)
	colors, _ := cv.Resolve()

	center := colors[32*64+32]
	want := lin.Vec3{X: 0.5, Y: 0.5, Z: 1}
	if math32Abs(center.X-want.X) > 0.05 || math32Abs(center.Y-want.Y) > 0.05 || center.Z != 1 {
		t.Errorf("got %v want ~%v", center, want)
	}
}

// TestShadowAnyHitRespectsShadowingFlag reproduces spec scenario 5: a
// shadow ray from sphere B toward a directional light is occluded by
// sphere A only while A carries the Shadowing flag.
func TestShadowAnyHitRespectsShadowingFlag(t *testing.T) {
	a := scene.Geometry{
		Transform: lin.Transform{Position: lin.Vec3{Z: 5}, Rotation: lin.QI, Scale: lin.V3(1)},
		Type:      scene.TypeSphere,
		Flags:     scene.Visible | scene.Shadowing,
	}
	b := scene.Geometry{
		Transform: lin.Transform{Position: lin.Vec3{Z: 10}, Rotation: lin.QI, Scale: lin.V3(1)},
		Type:      scene.TypeSphere,
		Flags:     scene.Visible | scene.Shadowing,
	}
	sc := scene.New([]scene.Geometry{a, b}, nil, []scene.Material{{}, {}}, nil, nil, nil)
	tracer := scenetrace.NewTracer(sc)

	surfacePoint := lin.Vec3{Z: 9}
	lightDir := lin.Vec3{Z: -1}
	shadowRay := ray.New(lightDir.ScaleAdd(1e-4, surfacePoint), lightDir)

	if _, occluded := tracer.Trace(shadowRay, sc, true, lin.Large, 1); !occluded {
		t.Fatalf("expected A (Shadowing) to occlude the shadow ray")
	}

	sc.Geometries[0].Flags = scene.Visible
	if _, occluded := tracer.Trace(shadowRay, sc, true, lin.Large, 1); occluded {
		t.Fatalf("expected A without Shadowing to no longer occlude the shadow ray")
	}
}

// TestRenderMirrorBoxScenario reproduces spec scenario 2's setup (a fully
// reflective, low-roughness Cook-Torrance box lit by a point light) at the
// render level: the lit front face returns a positive color and a finite
// depth, confirming the Reflective+CookTorrance material path runs
// end-to-end through the full worker-pool pipeline without error. The
// scenario's sharper claim — the specular lobe center is strictly
// brighter than its edge — is checked directly against the BRDF's
// cookTorrance term in shade/shade_test.go, where NdotH can be controlled
// exactly instead of hoping a screen-space pixel lands on the lobe.
func TestRenderMirrorBoxScenario(t *testing.T) {
	box := scene.Geometry{
		Transform: lin.Transform{Rotation: lin.QI, Scale: lin.V3(1)},
		Type:      scene.TypeBox,
		Flags:     scene.Visible | scene.Shadowing,
	}
	mat := scene.Material{
		Albedo:       lin.V3(1),
		Reflectivity: lin.V3(1),
		Roughness:    0.02,
		BRDF:         scene.CookTorrance,
		Flags:        scene.Reflective,
	}
	sc := scene.New([]scene.Geometry{box}, nil, []scene.Material{mat}, nil, nil, nil)
	sc.Lights = []scene.Light{{Color: lin.V3(1), PositionOrDirection: lin.Vec3{X: 2, Y: 2, Z: -2}, Intensity: 100}}

	cam := scene.Camera{Position: lin.Vec3{Z: -4}, Rotation: lin.QI, FocalLength: 1}
	cv := canvas.New(64, 64, false)
	Render(sc, cam, cv, beautyConfig())
	colors, depths := cv.Resolve()

	center := colors[32*64+32]
	if center.X <= 0 {
		t.Errorf("front-face center got %v want a positive lit color", center)
	}
	if d := depths[32*64+32]; math.IsInf(float64(d), 1) {
		t.Error("front-face center got +Inf depth want a finite hit distance")
	}
}

func math32Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
