package scene

// DefaultSceneYAML is the built-in solar system
// Sun at the plane origin, eight planets, and the moon orbiting the earth
const DefaultSceneYAML = `
speed: 1.0
plane_y: 0
ring_segments: 128

sun:
  size: 10
  color: "#ffff00"

star_field:
  count: 5000
  half_extent: 250
  proximity_threshold: 100
  fall_rate: 0.1
  lower_bound: -200
  upper_bound: 200
  seed: 24301

bodies:
  - id: mercury
    radius_from_sun: 4
    width_scale: 10
    height_scale: 9
    period: 8
    curvature: 1.6
    size: 1
    color: "#aaaaaa"

  - id: venus
    radius_from_sun: 9
    width_scale: 10
    height_scale: 9.5
    period: 12
    curvature: 1.2
    size: 2
    color: "#ffa500"

  - id: earth
    radius_from_sun: 16
    width_scale: 10
    height_scale: 9.5
    period: 20
    curvature: 1.1
    spin_step: 0.03
    size: 3
    color: "#0000ff"

  - id: moon
    parent: earth
    radius_from_sun: 4
    width_scale: 1
    height_scale: 1
    period: 3
    curvature: 1
    segments: 32
    size: 0.5
    color: "#888888"

  - id: mars
    radius_from_sun: 25
    width_scale: 10
    height_scale: 9
    x_offset: 2
    period: 35
    curvature: 1.4
    size: 2.5
    color: "#ff0000"

  - id: jupiter
    radius_from_sun: 36
    width_scale: 10
    height_scale: 9.5
    period: 60
    curvature: 1.2
    spin_step: 0.05
    size: 5
    color: "#ffd700"

  - id: saturn
    radius_from_sun: 51
    width_scale: 10
    height_scale: 9
    y_offset: 15
    period: 90
    curvature: 2
    size: 4.5
    color: "#f5deb3"
    band:
      radius: 7
      color: "#aaaaaa"

  - id: uranus
    radius_from_sun: 64
    width_scale: 10
    height_scale: 9.5
    x_offset: -3
    period: 140
    curvature: 1.3
    size: 4
    color: "#add8e6"

  - id: neptune
    radius_from_sun: 81
    width_scale: 10
    height_scale: 9.5
    period: 200
    curvature: 1.5
    size: 3.5
    color: "#00008b"
`
