// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package shade is the surface shader (component H): given a finalized
// scene hit it evaluates direct lighting, emissive-quad area lights,
// image-based lighting, and light-volume glow, then iterates reflection
// and refraction bounces with Fresnel throughput until the ray misses, hits
// an emissive quad, or runs out of depth.
package shade

import (
	"github.com/chewxy/math32"

	"github.com/gazed/slimtrace/color"
	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/prim"
	"github.com/gazed/slimtrace/ray"
	"github.com/gazed/slimtrace/scene"
	"github.com/gazed/slimtrace/scenetrace"
	"github.com/gazed/slimtrace/volume"
)

// traceOffset nudges a shadow/bounce ray's origin off the surface it left,
// matching scenetrace's own offset so shadow rays don't re-hit their
// source geometry.
const traceOffset = 1e-4

const oneOverPi = 1 / lin.PI

// Config carries the renderer settings the shader needs per pixel: bounce
// depth and the optional skybox texture ids (§3 "Renderer configuration").
// A texture id < 0 means "not configured".
type Config struct {
	MaxDepth              uint8
	SkyboxColorTexID      int32
	SkyboxRadianceTexID   int32
	SkyboxIrradianceTexID int32
}

// Shader owns one worker's shading scratch: the scenetrace.Tracer it casts
// bounce and shadow rays through. One per rendering goroutine; never
// shared across threads (§5).
type Shader struct {
	Tracer *scenetrace.Tracer
}

// NewShader builds a Shader that traces through tracer.
func NewShader(tracer *scenetrace.Tracer) *Shader {
	return &Shader{Tracer: tracer}
}

// surfaceState is the shading-relevant state derived from one hit: the
// point, normal, view/reflection/refraction directions, and the vectors
// every radianceFraction evaluation needs.
type surfaceState struct {
	P, N, V, R, RF lin.Vec3
	NdotV          float32
	Albedo         color.Color
	Refracted      bool
}

// Shade evaluates the full shading result for primaryRay's hit (§4.H). An
// emissive surface struck from the front returns its emission immediately;
// everything else runs the iterative bounce loop.
func (s *Shader) Shade(primaryRay ray.Ray, hit scenetrace.Hit, sc *scene.Scene, cfg Config) color.Color {
	mat := materialAt(sc, hit.MaterialID)
	if mat.Flags&scene.Emissive != 0 && !hit.FromBehind {
		return mat.Emission
	}
	return s.bounce(primaryRay, hit, sc, cfg)
}

func (s *Shader) bounce(primaryRay ray.Ray, hit scenetrace.Hit, sc *scene.Scene, cfg Config) color.Color {
	result := color.Black
	throughput := color.White

	currentRay := primaryRay
	current := hit
	depthLeft := cfg.MaxDepth

	for depthLeft > 0 {
		mat := materialAt(sc, current.MaterialID)
		surf := s.prepareSurface(currentRay, current, mat, sc)

		bounceColor := color.Black
		for _, light := range sc.Lights {
			s.shadeFromLight(light, &surf, sc, mat, &bounceColor)
		}
		if sc.HasEmissiveQuads {
			s.shadeFromEmissiveQuads(sc, current.GeometryID, &surf, &bounceColor)
		}
		if cfg.SkyboxIrradianceTexID >= 0 && cfg.SkyboxRadianceTexID >= 0 {
			s.shadeIBL(sc, &surf, mat, cfg, &bounceColor)
		}
		result = bounceColor.Mul(throughput).Add(result)

		for _, light := range sc.Lights {
			result = volume.Glow(currentRay.Origin, currentRay.Direction, current.Distance, light).Add(result)
		}

		depthLeft--
		if mat.Flags&(scene.Reflective|scene.Refractive) == 0 || depthLeft == 0 {
			break
		}

		refracted := surf.Refracted && mat.Flags&scene.Refractive != 0
		nextDirection := surf.R
		if refracted {
			nextDirection = surf.RF
		}
		throughput = throughput.Mul(nextThroughput(mat, surf, refracted))

		currentRay = ray.New(current.Position, nextDirection)
		nextHit, ok := s.Tracer.Trace(currentRay, sc, false, lin.Large, current.ConeWidthScalingFactor)
		if !ok {
			if sky, ok := s.sampleSkybox(sc, cfg.SkyboxColorTexID, currentRay.Direction); ok {
				result = sky.Mul(throughput).Add(result)
			}
			break
		}

		nextGeom := sc.Geometries[nextHit.GeometryID]
		nextMat := materialAt(sc, nextHit.MaterialID)
		if nextGeom.Type == scene.TypeQuad && nextMat.Flags&scene.Emissive != 0 {
			if !nextHit.FromBehind {
				result = nextMat.Emission.Mul(throughput).Add(result)
			}
			break
		}
		current = nextHit
	}
	return result
}

// nextThroughput is the Fresnel (Cook-Torrance) or flat-reflectivity
// (other BRDFs) weight the next bounce's color is multiplied by (§4.H.6).
func nextThroughput(mat scene.Material, surf surfaceState, refracted bool) color.Color {
	if mat.BRDF == scene.CookTorrance {
		f := schlickColor(lin.Clamp01(surf.N.Dot(surf.R)), mat.Reflectivity)
		if refracted {
			return color.White.Sub(f)
		}
		return f
	}
	if refracted {
		return mat.Reflectivity
	}
	return color.White.Sub(mat.Reflectivity)
}

func (s *Shader) sampleSkybox(sc *scene.Scene, texID int32, direction lin.Vec3) (color.Color, bool) {
	if texID < 0 || int(texID) >= len(sc.Textures) || sc.Textures[texID] == nil {
		return color.Black, false
	}
	return sc.Textures[texID].SampleCube(direction, 0), true
}

func materialAt(sc *scene.Scene, id uint32) scene.Material {
	if int(id) >= len(sc.Materials) {
		return scene.Material{}
	}
	return sc.Materials[id]
}

// prepareSurface derives the shading vectors for one hit (§4.H.1-2):
// applies the normal map if present, computes view/reflection directions,
// and precomputes the refraction direction if the material is refractive
// and the ray isn't beyond total internal reflection.
func (s *Shader) prepareSurface(currentRay ray.Ray, hit scenetrace.Hit, mat scene.Material, sc *scene.Scene) surfaceState {
	var surf surfaceState

	normal := hit.Normal
	if mat.Flags&scene.HasNormalMap != 0 {
		if sample, ok := s.sampleMaterialTexture(sc, mat, 1, hit); ok {
			normal = rotateNormal(normal, sample, mat.NormalMagnitude)
		}
	}

	surf.P = hit.Position
	surf.N = normal
	surf.V = currentRay.Direction.Neg()
	surf.NdotV = lin.Clamp01(surf.N.Dot(surf.V))
	surf.R = currentRay.Direction.Reflect(surf.N)
	surf.RF = surf.R

	surf.Albedo = color.White
	if mat.Flags&scene.HasAlbedoMap != 0 {
		if sample, ok := s.sampleMaterialTexture(sc, mat, 0, hit); ok {
			surf.Albedo = sample
		}
	}

	if mat.Flags&scene.Refractive != 0 {
		ior := mat.IOR1OverIOR2
		if hit.FromBehind {
			ior = mat.IOR2OverIOR1
		}
		c := ior * ior * (1 - surf.NdotV*surf.NdotV)
		if c < 1 {
			surf.Refracted = true
			surf.RF = surf.N.ScaleAdd(ior*surf.NdotV-math32.Sqrt(1-c), currentRay.Direction.Scale(ior)).Normalized()
		}
	}
	return surf
}

func (s *Shader) sampleMaterialTexture(sc *scene.Scene, mat scene.Material, slot int, hit scenetrace.Hit) (color.Color, bool) {
	if slot >= mat.TextureCount || slot >= len(mat.TextureIDs) {
		return color.Black, false
	}
	id := mat.TextureIDs[slot]
	if id < 0 || int(id) >= len(sc.Textures) || sc.Textures[id] == nil {
		return color.Black, false
	}
	return sc.Textures[id].Sample(hit.UV.X, hit.UV.Y, hit.UVCoverage), true
}

// decodeNormal unpacks a tangent-space normal-map texel (encoded
// [0,1]^3, channel order r,b,g) back to a unit vector in [-1,1]^3.
func decodeNormal(c color.Color) lin.Vec3 {
	return lin.Vec3{X: c.X, Y: c.Z, Z: c.Y}.Scale(2).Sub(lin.V3(1)).Normalized()
}

// rotateNormal tilts the geometric normal by the tangent-space direction
// decoded from a normal-map sample, scaled by magnitude (§4.H.1).
func rotateNormal(normal lin.Vec3, sample color.Color, magnitude float32) lin.Vec3 {
	decoded := decodeNormal(sample)
	axis := lin.Vec3{X: decoded.Z, Z: -decoded.X}
	angle := math32.Acos(lin.Clamp(decoded.Y, -1, 1)) * magnitude
	return lin.AxisAngle(axis, angle).RotateVec3(normal)
}

// shadeFromLight adds one point/directional light's direct contribution to
// color, after a shadow ray confirms the light isn't occluded (§4.H.3).
func (s *Shader) shadeFromLight(light scene.Light, surf *surfaceState, sc *scene.Scene, mat scene.Material, out *color.Color) {
	var L lin.Vec3
	var Ld, Ld2 float32

	if light.Directional {
		Ld = lin.Large
		Ld2 = 1
		L = light.PositionOrDirection.Neg()
	} else {
		toLight := light.PositionOrDirection.Sub(surf.P)
		Ld2 = toLight.SquaredLength()
		Ld = math32.Sqrt(Ld2)
		L = toLight.Scale(1 / Ld)
	}

	NdotL := lin.Clamp01(L.Dot(surf.N))
	if NdotL <= 0 {
		return
	}

	shadowRay := ray.New(L.ScaleAdd(traceOffset, surf.P), L)
	if _, occluded := s.Tracer.Trace(shadowRay, sc, true, Ld, 1); occluded {
		return
	}

	fd, fs := radianceFraction(surf, L, NdotL, mat)
	*out = fd.Add(fs).Mul(light.Color.Scale(NdotL * light.Intensity / Ld2)).Add(*out)
}

// shadeIBL adds diffuse/specular image-based lighting sampled from the
// skybox irradiance (in N) and radiance (in R) cube maps (§4.H.5).
func (s *Shader) shadeIBL(sc *scene.Scene, surf *surfaceState, mat scene.Material, cfg Config, out *color.Color) {
	irradianceTex := sc.Textures[cfg.SkyboxIrradianceTexID]
	radianceTex := sc.Textures[cfg.SkyboxRadianceTexID]
	if irradianceTex == nil || radianceTex == nil {
		return
	}
	diffuse := irradianceTex.SampleCube(surf.N, 0)
	specular := radianceTex.SampleCube(surf.R, 0)
	fd, fs := radianceFraction(surf, surf.N, 1, mat)
	*out = diffuse.Mul(fd).Add(specular.Mul(fs)).Add(*out)
}

// radianceFraction evaluates the BRDF's diffuse/specular fractions (Fd,
// Fs) for light direction L against surf (§4.H.BRDF). The caller combines
// these with the light's incoming radiance.
func radianceFraction(surf *surfaceState, L lin.Vec3, NdotL float32, mat scene.Material) (fd, fs color.Color) {
	fd = mat.Albedo.Mul(surf.Albedo)
	fs = color.Black

	if mat.BRDF == scene.CookTorrance {
		fd = fd.Scale((1 - mat.Metalness) * oneOverPi)
		if surf.NdotV > 0 && mat.Roughness > 0 {
			H := L.Add(surf.V).Normalized()
			NdotH := lin.Clamp01(surf.N.Dot(H))
			HdotL := lin.Clamp01(H.Dot(L))
			var f color.Color
			fs, f = cookTorrance(mat.Roughness, NdotL, surf.NdotV, HdotL, NdotH, mat.Reflectivity)
			fd = fd.Mul(color.White.Sub(f))
		}
		return fd, fs
	}

	fd = fd.Scale(mat.Roughness * oneOverPi)
	if mat.BRDF != scene.Lambert {
		var specularFactor, exponent float32
		if mat.BRDF == scene.Phong {
			exponent = 4
			specularFactor = lin.Clamp01(surf.R.Dot(L))
		} else {
			exponent = 16
			specularFactor = lin.Clamp01(surf.N.Dot(L.Add(surf.V).Normalized()))
		}
		if specularFactor > 0 {
			fs = mat.Reflectivity.Scale(math32.Pow(specularFactor, exponent) * (1 - mat.Roughness))
		}
	}
	return fd, fs
}

// cookTorrance evaluates the microfacet specular term Fs = D*G*F/(4*NdotV)
// and returns the Schlick Fresnel F alongside it, since the caller needs
// both (§4.H.BRDF).
func cookTorrance(roughness, NdotL, NdotV, HdotL, NdotH float32, reflectivity color.Color) (fs, f color.Color) {
	f = schlickColor(HdotL, reflectivity)
	if NdotV <= 0 {
		return color.Black, f
	}
	alpha2 := roughness * roughness
	d := ggxNDF(alpha2, NdotH)
	g := ggxSmithSchlick(NdotL, NdotV, roughness)
	fs = f.Scale(d * g / (4 * NdotV))
	return fs, f
}

// ggxNDF is the Trowbridge-Reitz normal-distribution function.
func ggxNDF(roughnessSquared, NdotH float32) float32 {
	denom := NdotH*NdotH*(roughnessSquared-1) + 1
	return oneOverPi * roughnessSquared / (denom * denom)
}

// ggxSmithSchlick is the Smith-Schlick geometry term (Karis' UE4
// approximation: k = roughness/2).
func ggxSmithSchlick(NdotL, NdotV, roughness float32) float32 {
	k := roughness * 0.5
	oneMinusK := 1 - k
	result := NdotV / math32.Max(NdotV*oneMinusK+k, lin.Epsilon)
	result *= NdotL / math32.Max(NdotL*oneMinusK+k, lin.Epsilon)
	return result
}

// schlickColor is the Schlick Fresnel approximation with a colored R0
// (reflectivity): F(theta) = R0 + (1-R0)*(1-cosTheta)^5.
func schlickColor(cosTheta float32, r0 color.Color) color.Color {
	factor := math32.Pow(1-lin.Clamp01(cosTheta), 5)
	return color.Color{
		X: r0.X + (1-r0.X)*factor,
		Y: r0.Y + (1-r0.Y)*factor,
		Z: r0.Z + (1-r0.Z)*factor,
	}
}

// areaLightVector computes the emissive quad's 4 world-space corners from
// its transform's scale/orientation and the analytic solid-angle vector
// Lambert's formula gives for a rectangular light seen from P (§4.H.4).
func areaLightVector(transform lin.Transform, P lin.Vec3) (areaVec lin.Vec3, corners [4]lin.Vec3, ok bool) {
	sx, sz := transform.Scale.X, transform.Scale.Z
	if sx == 0 || sz == 0 {
		return lin.Vec3{}, corners, false
	}

	U := transform.Rotation.RotateVec3(lin.Vec3{X: math32.Abs(sx)})
	V := transform.Rotation.RotateVec3(lin.Vec3{Z: math32.Abs(sz)})
	corners[0] = transform.Position.Sub(U).Sub(V)
	corners[1] = transform.Position.Add(U).Sub(V)
	corners[2] = transform.Position.Add(U).Add(V)
	corners[3] = transform.Position.Sub(U).Add(V)

	var u [4]lin.Vec3
	for i, c := range corners {
		u[i] = c.Sub(P).Normalized()
	}
	edgeVector := func(a, b lin.Vec3) lin.Vec3 {
		cosAngle := lin.Clamp(a.Dot(b), -1, 1)
		return a.Cross(b).Scale(math32.Acos(cosAngle) * 0.5)
	}
	areaVec = edgeVector(u[0], u[1]).Add(edgeVector(u[1], u[2])).Add(edgeVector(u[2], u[3])).Add(edgeVector(u[3], u[0]))
	return areaVec, corners, true
}

// sphereOcclusionHit intersects localRay (already localized into the
// occluder's object space) against the unit sphere at the local origin,
// returning the ray parameter and the squared perpendicular distance from
// the ray to the center — the quantity the emissive-quad occlusion
// estimate needs, not the hit position (which is always unit length).
func sphereOcclusionHit(localRay ray.Ray) (dist, perpSq float32, ok bool) {
	rc := localRay.Origin.Neg()
	b := localRay.Direction.Dot(rc)
	c := rc.SquaredLength() - 1
	h := b*b - c
	if h < 0 {
		return 0, 0, false
	}
	h = math32.Sqrt(h)
	tNear := b - h
	if tNear <= 0 {
		return 0, 0, false
	}
	return tNear, rc.SquaredLength() - b*b, true
}

// shadeFromEmissiveQuads adds the contribution of every emissive quad
// other than selfGeomID, attenuated by a cheap per-occluder visibility
// estimate rather than a full shadow ray (§4.H.4).
func (s *Shader) shadeFromEmissiveQuads(sc *scene.Scene, selfGeomID uint32, surf *surfaceState, out *color.Color) {
	for qi := range sc.Geometries {
		quadID := uint32(qi)
		if quadID == selfGeomID {
			continue
		}
		quad := sc.Geometries[qi]
		if quad.Type != scene.TypeQuad {
			continue
		}
		quadMat := materialAt(sc, quad.MaterialID)
		if quadMat.Flags&scene.Emissive == 0 {
			continue
		}

		toLight := quad.Transform.Position.Sub(surf.P)
		if surf.N.Dot(toLight) <= 0 {
			continue
		}
		Ld := toLight.Length()
		if Ld == 0 {
			continue
		}
		L := toLight.Scale(1 / Ld)
		NdotL := lin.Clamp01(surf.N.Dot(L))
		if NdotL <= 0 {
			continue
		}

		areaVec, corners, ok := areaLightVector(quad.Transform, surf.P)
		if !ok {
			continue
		}
		emissionIntensity := surf.N.Dot(areaVec)
		if emissionIntensity <= 0 {
			continue
		}

		skip := true
		for _, c := range corners {
			if surf.N.Dot(c.Sub(surf.P)) >= 0 {
				skip = false
				break
			}
		}
		if skip {
			continue
		}

		Ro := L.ScaleAdd(traceOffset, surf.P)
		shadedLight := s.estimateEmissiveQuadOcclusion(sc, quadID, selfGeomID, Ro, L, emissionIntensity)
		if shadedLight <= 0 {
			continue
		}

		fd, fs := radianceFraction(surf, L, NdotL, quadMat)
		*out = fd.Add(fs).Mul(quadMat.Emission.Scale(emissionIntensity * shadedLight * 7)).Add(*out)
	}
}

// estimateEmissiveQuadOcclusion returns a [0,1] visibility estimate for
// the light quad as seen along L, folding in a cheap attenuation term per
// sphere/quad occluder rather than testing true solid occlusion.
func (s *Shader) estimateEmissiveQuadOcclusion(sc *scene.Scene, quadID, selfGeomID uint32, Ro, L lin.Vec3, emissionIntensity float32) float32 {
	shadedLight := float32(1)
	shadowRay := ray.New(Ro, L)

	for si := range sc.Geometries {
		occluderID := uint32(si)
		if occluderID == quadID || occluderID == selfGeomID {
			continue
		}
		occluder := sc.Geometries[si]

		var localRay ray.Ray
		localRay.Localize(shadowRay, occluder.Transform)
		localRay.Direction = localRay.Direction.Normalized()

		d := float32(1)
		switch occluder.Type {
		case scene.TypeSphere:
			if dist, perpSq, ok := sphereOcclusionHit(localRay); ok {
				d -= (1 - math32.Sqrt(perpSq)) / (dist * emissionIntensity * 3)
			}
		case scene.TypeQuad:
			transparent := occluder.Flags&scene.Transparent != 0
			candidate := ray.Miss()
			if prim.Quad(localRay, &candidate, transparent) {
				maxAbs := math32.Max(math32.Abs(candidate.Position.X), math32.Abs(candidate.Position.Z))
				d -= 3 * (1 - maxAbs) / (candidate.Distance * emissionIntensity)
			}
		}
		if d < shadedLight {
			shadedLight = d
		}
	}
	return shadedLight
}
