package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/bouncelab/internal/sim"
)

var ballPalette = []string{
	"#ff6b6b", "#feca57", "#48dbfb", "#1dd1a1",
	"#f368e0", "#ff9f43", "#54a0ff", "#00d2d3",
}

// SceneToSVG renders a snapshot of the scene as an SVG image in world
// coordinates. Each ball keeps a stable palette color by ID and gets
// a short velocity tick so still images convey motion.
func SceneToSVG(balls []sim.BallState, width, height float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, b := range balls {
		color := ballPalette[b.ID%len(ballPalette)]
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="0.9"/>
`, b.Position.X, b.Position.Y, b.Radius, color))

		speed := b.Velocity.Magnitude()
		if speed > 0.01 {
			tip := b.Position.Add(b.Velocity.Scale(8))
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5" stroke-opacity="0.6"/>
`, b.Position.X, b.Position.Y, tip.X, tip.Y, color))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// EnergyToSVG plots an energy time series as a single SVG path.
func EnergyToSVG(times, energies []float64, width, height int) string {
	if len(times) < 2 || len(times) != len(energies) {
		return ""
	}

	minT, maxT := times[0], times[len(times)-1]
	minE, maxE := energies[0], energies[0]
	for _, e := range energies {
		if e < minE {
			minE = e
		}
		if e > maxE {
			maxE = e
		}
	}

	rangeT := maxT - minT
	rangeE := maxE - minE
	if rangeT == 0 {
		rangeT = 1
	}
	if rangeE == 0 {
		rangeE = 1
	}
	minE -= rangeE * 0.1
	maxE += rangeE * 0.1
	rangeE = maxE - minE

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#48dbfb" stroke-width="1.5" d="M`,
		width, height, width, height))

	for i := range times {
		x := (times[i] - minT) / rangeT * float64(width)
		y := float64(height) - (energies[i]-minE)/rangeE*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
