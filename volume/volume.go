// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package volume renders the visible glow around a light (component I):
// each light is modeled as an inverse-square density ball, integrated
// analytically along the traced segment.
package volume

import (
	"github.com/chewxy/math32"

	"github.com/gazed/slimtrace/color"
	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/scene"
)

// radius returns a light's volume radius: r = intensity/64 (§4.I).
func radius(intensity float32) float32 { return intensity / 64 }

// density integrates the ball's inverse-square density analytically over
// [tNear, tFar] (already clipped to the traced segment), returning the
// (non-negative) accumulated density. b and c are the light-ball
// sphere-hit quadratic's coefficients: t^2 - 2*b*t + c = 0.
func density(b, c, tNear, tFar float32) float32 {
	antiderivative := func(t float32) float32 {
		return (c*t - b*t*t + t*t*t/3) * 0.75
	}
	d := antiderivative(tNear) - antiderivative(tFar)
	if d < 0 {
		return 0
	}
	return d
}

// Glow accumulates light's visible volume contribution along a ray segment
// from the origin out to maxDistance (§4.I). origin/direction must be in
// the same space as light.PositionOrDirection (world space); direction
// should be unit length so the quadratic's "t" is true distance.
func Glow(origin, direction lin.Vec3, maxDistance float32, light scene.Light) color.Color {
	if light.Directional {
		return color.Black // a directional light has no position to center a volume on
	}

	r := radius(light.Intensity)
	if r <= 0 {
		return color.Black
	}

	oc := origin.Sub(light.PositionOrDirection)
	b := -oc.Dot(direction)
	c := oc.Dot(oc) - r*r

	disc := b*b - c
	if disc <= 0 {
		return color.Black
	}
	root := math32.Sqrt(disc)
	tNear, tFar := b-root, b+root

	if tNear < 0 {
		tNear = 0
	}
	if tFar > maxDistance {
		tFar = maxDistance
	}
	if tNear >= tFar {
		return color.Black
	}

	d := density(b, c, tNear, tFar)
	if d <= 0 {
		return color.Black
	}
	return light.Color.Scale(math32.Pow(d, 8) * 4)
}
