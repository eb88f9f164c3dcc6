// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gazed/slimtrace/color"
)

// RenderMode selects what raytracer.Render writes per pixel: the final
// shaded color, or one of the debug visualizations (§6, supplemented from
// original_source/renderer/closest_hit/debug.h).
type RenderMode uint8

const (
	Beauty RenderMode = iota
	Depth
	Normals
	NormalMap
	MipLevel
	UVs
)

// RendererConfig is the renderer's frame-independent configuration (§3
// "Renderer configuration"). It is named raytracer.Config in SPEC_FULL but
// lives here so scene.LoadConfigYAML can build one without raytracer
// importing scene in a cycle; raytracer aliases this type as its own
// Config.
type RendererConfig struct {
	MaxDepth   uint8      `yaml:"max_depth"`
	RenderMode RenderMode `yaml:"render_mode"`

	SkyboxColorTexID      int32 `yaml:"skybox_color_tex_id"`
	SkyboxRadianceTexID   int32 `yaml:"skybox_radiance_tex_id"`
	SkyboxIrradianceTexID int32 `yaml:"skybox_irradiance_tex_id"`

	MipLevelColors [9]color.Color `yaml:"mip_level_colors"`
}

// DefaultRendererConfig returns a config with no skybox configured and a
// single bounce, the minimal setup every scenario in §8 renders with.
func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		MaxDepth:              1,
		SkyboxColorTexID:      -1,
		SkyboxRadianceTexID:   -1,
		SkyboxIrradianceTexID: -1,
	}
}

// renderModeNames maps the YAML document's string form of render_mode to
// the RenderMode constant, since a bare integer in a config file is
// unreadable to a human editing it by hand.
var renderModeNames = map[string]RenderMode{
	"beauty":     Beauty,
	"depth":      Depth,
	"normals":    Normals,
	"normal_map": NormalMap,
	"mip_level":  MipLevel,
	"uvs":        UVs,
}

// UnmarshalYAML lets render_mode be written as a name ("depth") rather
// than a raw integer.
func (m *RenderMode) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	mode, ok := renderModeNames[name]
	if !ok {
		return fmt.Errorf("scene: unknown render_mode %q", name)
	}
	*m = mode
	return nil
}

// LoadConfigYAML reads a RendererConfig from r (§6). Max depth is clamped
// into the spec's 1..10 range rather than rejected, since a config that
// asks for 0 or 255 bounces almost always means "use the default" or
// "as many as practical", not a hard error.
func LoadConfigYAML(r io.Reader) (RendererConfig, error) {
	cfg := DefaultRendererConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return RendererConfig{}, fmt.Errorf("scene: decoding renderer config: %w", err)
	}
	if cfg.MaxDepth < 1 {
		cfg.MaxDepth = 1
	}
	if cfg.MaxDepth > 10 {
		cfg.MaxDepth = 10
	}
	return cfg, nil
}
