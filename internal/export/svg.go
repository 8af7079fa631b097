// Package export renders recorded runs as standalone SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/shakebox/internal/scene"
)

// HeightSVG plots the center-of-mass height over time as a single path.
func HeightSVG(times, heights []float64, width, height int) string {
	if len(heights) < 2 || len(times) != len(heights) {
		return ""
	}

	minH, maxH := heights[0], heights[0]
	for _, h := range heights {
		if h < minH {
			minH = h
		}
		if h > maxH {
			maxH = h
		}
	}
	rangeH := maxH - minH
	if rangeH == 0 {
		rangeH = 1
	}
	minH -= rangeH * 0.1
	maxH += rangeH * 0.1
	rangeH = maxH - minH

	t0 := times[0]
	rangeT := times[len(times)-1] - t0
	if rangeT == 0 {
		rangeT = 1
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#00ff00" stroke-width="1.5" d="M`,
		width, height, width, height))

	for i := range heights {
		x := (times[i] - t0) / rangeT * float64(width)
		y := float64(height) - (heights[i]-minH)/rangeH*float64(height)

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

// SnapshotSVG draws a side view (x across, y up) of one recorded frame: the
// room outline plus every sphere, scaled to fit the viewport with padding.
func SnapshotSVG(frame []float64, planes []scene.Plane, radius float64, width, height int) string {
	if len(frame) < 3 {
		return ""
	}

	minX, maxX := -10.0, 10.0
	minY, maxY := -5.0, 20.0
	for _, p := range planes {
		n := p.Normal()
		switch {
		case n.Y > 0.9:
			minY = p.Position.Y
		case n.Y < -0.9:
			maxY = p.Position.Y
		case n.X > 0.9:
			minX = p.Position.X
		case n.X < -0.9:
			maxX = p.Position.X
		}
	}

	pad := 2.0
	rangeX := maxX - minX + 2*pad
	rangeY := maxY - minY + 2*pad
	sx := float64(width) / rangeX
	sy := float64(height) / rangeY
	scale := sx
	if sy < sx {
		scale = sy
	}

	toScreen := func(x, y float64) (float64, float64) {
		return (x - minX + pad) * scale, float64(height) - (y-minY+pad)*scale
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	x0, y0 := toScreen(minX, maxY)
	x1, y1 := toScreen(maxX, minY)
	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#444444" stroke-width="1"/>
`, x0, y0, x1-x0, y1-y0))

	sb.WriteString(`<g fill="#00ff00" fill-opacity="0.8">
`)
	for i := 0; i+2 < len(frame); i += 3 {
		cx, cy := toScreen(frame[i], frame[i+1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, radius*scale))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
