package renderer

import (
	"github.com/Carmen-Shannon/oxy-room/engine/camera"
	"github.com/Carmen-Shannon/oxy-room/engine/light"
	"github.com/Carmen-Shannon/oxy-room/engine/model"
)

const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
	shadowEntryPoint   = "vs_shadow"
)

// roomShaderBody shades world-space vertices with the scene lights. Faces lit
// from behind flip their normal so room planes read as double sided. Only the
// shadow-casting directional light is attenuated by the shadow map.
const roomShaderBody = `
struct LightBuffer {
    header: LightHeader,
    lights: array<Light>,
};

@group(0) @binding(0) var<uniform> camera: CameraUniform;
@group(0) @binding(1) var<storage, read> light_buffer: LightBuffer;

@group(1) @binding(0) var<uniform> shadow: ShadowUniform;
@group(1) @binding(1) var shadow_map: texture_depth_2d;
@group(1) @binding(2) var shadow_sampler: sampler_comparison;

fn shadow_factor(world: vec3<f32>) -> f32 {
    if (shadow.enabled == 0u) {
        return 1.0;
    }
    let p = shadow.view_proj * vec4<f32>(world, 1.0);
    let ndc = p.xyz / p.w;
    let uv = vec2<f32>(ndc.x * 0.5 + 0.5, 0.5 - ndc.y * 0.5);
    if (uv.x < 0.0 || uv.x > 1.0 || uv.y < 0.0 || uv.y > 1.0 || ndc.z > 1.0) {
        return 1.0;
    }
    return textureSampleCompareLevel(shadow_map, shadow_sampler, uv, ndc.z + shadow.bias);
}

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) world: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) color: vec4<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip = camera.view_proj * vec4<f32>(in.position, 1.0);
    out.world = in.position;
    out.normal = in.normal;
    out.color = in.color;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    var n = normalize(in.normal);
    if (dot(n, camera.position - in.world) < 0.0) {
        n = -n;
    }
    let shade = shadow_factor(in.world);
    var lit = vec3<f32>(0.0);
    for (var i = 0u; i < light_buffer.header.count; i = i + 1u) {
        let l = light_buffer.lights[i];
        switch l.light_type {
            case 0u: {
                lit = lit + l.color * l.intensity;
            }
            case 1u: {
                let t = n.y * 0.5 + 0.5;
                lit = lit + mix(l.ground_color, l.color, t) * l.intensity;
            }
            case 2u: {
                let s = select(1.0, shade, l.casts_shadow != 0u);
                lit = lit + l.color * l.intensity * s * max(dot(n, -l.direction), 0.0);
            }
            case 3u: {
                let d = l.position - in.world;
                let dist = max(length(d), 0.0001);
                var att = 1.0;
                if (l.light_range > 0.0) {
                    att = clamp(1.0 - dist / l.light_range, 0.0, 1.0);
                }
                lit = lit + l.color * l.intensity * att * max(dot(n, d / dist), 0.0);
            }
            default: {}
        }
    }
    return vec4<f32>(in.color.rgb * lit, in.color.a);
}
`

// shadowShaderBody writes light-space depth for shadow casters.
const shadowShaderBody = `
@group(0) @binding(0) var<uniform> shadow: ShadowUniform;

@vertex
fn vs_shadow(in: VertexInput) -> @builtin(position) vec4<f32> {
    return shadow.view_proj * vec4<f32>(in.position, 1.0);
}
`

// roomShaderSource assembles the full WGSL module.
func roomShaderSource() string {
	return camera.GPUCameraUniformSource + light.GPULightSource + light.GPUShadowUniformSource +
		model.GPUVertexSource + roomShaderBody
}

// shadowShaderSource assembles the depth-only shadow module.
func shadowShaderSource() string {
	return light.GPUShadowUniformSource + model.GPUVertexSource + shadowShaderBody
}
