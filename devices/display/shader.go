package display

const vertex = `
#version 410

in  vec3 vertPos;
in  vec2 vertTexCoord;
out vec2 fragTexCoord;

void main() {
    fragTexCoord = vertTexCoord;
    gl_Position  = vec4(vertPos, 1);
}
`

const fragment = `
#version 410

uniform sampler2D pixels;
uniform vec4 palette[2];

in  vec2 fragTexCoord;
out vec4 outputColor;

void main() {
    // Pixels are stored as 0 or 255 in the red channel.
    float lit = texture(pixels, fragTexCoord).r;
    outputColor = mix(palette[0], palette[1], step(0.5, lit));
}
`
