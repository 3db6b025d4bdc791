package renderer

// litVertexShader transforms scene nodes and their light-space coordinates.
const litVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uViewProj;
uniform mat4 uLightViewProj;

out vec3 vNormal;
out vec4 vLightSpace;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vNormal = mat3(uModel) * aNormal;
    vLightSpace = uLightViewProj * world;
    gl_Position = uViewProj * world;
}
`

// litFragmentShader does Lambert shading from one directional light with a
// 3x3 PCF shadow lookup and gamma encoded output.
const litFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec4 vLightSpace;

uniform vec3 uColor;
uniform bool uUnlit;
uniform bool uDoubleSided;
uniform bool uReceiveShadow;

uniform vec3 uLightDir;
uniform vec3 uLightColor;
uniform float uIntensity;
uniform float uAmbient;

uniform bool uShadowsEnabled;
uniform sampler2DShadow uShadowMap;
uniform float uShadowBias;

uniform float uGamma;

out vec4 FragColor;

float shadowFactor() {
    vec3 p = vLightSpace.xyz / vLightSpace.w * 0.5 + 0.5;
    if (p.z > 1.0) {
        return 1.0;
    }
    vec2 texel = 1.0 / vec2(textureSize(uShadowMap, 0));
    float lit = 0.0;
    for (int x = -1; x <= 1; x++) {
        for (int y = -1; y <= 1; y++) {
            lit += texture(uShadowMap, vec3(p.xy + vec2(x, y) * texel, p.z + uShadowBias));
        }
    }
    return lit / 9.0;
}

void main() {
    vec3 albedo = pow(uColor, vec3(uGamma));
    if (uUnlit) {
        FragColor = vec4(pow(albedo, vec3(1.0 / uGamma)), 1.0);
        return;
    }

    vec3 n = normalize(vNormal);
    if (uDoubleSided && !gl_FrontFacing) {
        n = -n;
    }

    float diffuse = max(dot(n, normalize(uLightDir)), 0.0);
    if (uShadowsEnabled && uReceiveShadow && diffuse > 0.0) {
        diffuse *= shadowFactor();
    }

    vec3 color = albedo * (uAmbient + uLightColor * uIntensity * diffuse);
    FragColor = vec4(pow(color, vec3(1.0 / uGamma)), 1.0);
}
`

// depthVertexShader renders shadow casters into the light's depth map.
const depthVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uModel;
uniform mat4 uLightViewProj;

void main() {
    gl_Position = uLightViewProj * uModel * vec4(aPosition, 1.0);
}
`

const depthFragmentShader = `
#version 410 core

void main() {
}
`

// lineVertexShader and lineFragmentShader draw flat colored debug lines.
const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uViewProj;

void main() {
    gl_Position = uViewProj * vec4(aPosition, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec3 uColor;

out vec4 FragColor;

void main() {
    FragColor = vec4(uColor, 1.0);
}
`
