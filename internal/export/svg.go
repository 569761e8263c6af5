package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/circlesim/internal/dynamo"
)

// FrameToSVG draws a frame the way the window does: outlined circles, red
// lines between contacting centers, and a green line from the selected
// body to the pointer.
func FrameToSVG(f dynamo.Frame, bounds dynamo.Bounds) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#f5f5f5"/>
`, bounds.Width, bounds.Height, bounds.Width, bounds.Height))

	byID := make(map[dynamo.BodyID]dynamo.Body, len(f.Bodies))
	sb.WriteString(`<g fill="none" stroke="#000000" stroke-width="1">` + "\n")
	for _, b := range f.Bodies {
		byID[b.ID] = b
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", b.Pos.X, b.Pos.Y, b.Radius))
	}
	sb.WriteString("</g>\n")

	if len(f.Pairs) > 0 {
		sb.WriteString(`<g stroke="#e62937" stroke-width="1">` + "\n")
		for _, p := range f.Pairs {
			a, okA := byID[p.A]
			b, okB := byID[p.B]
			if !okA || !okB {
				continue
			}
			writeLine(&sb, a.Pos, b.Pos, "")
		}
		sb.WriteString("</g>\n")
	}

	if sel, ok := f.SelectedBody(); ok {
		writeLine(&sb, sel.Pos, f.Pointer, `stroke="#00e430" stroke-width="1"`)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeLine(sb *strings.Builder, a, b dynamo.Vec2, attrs string) {
	if attrs != "" {
		attrs = " " + attrs
	}
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"%s/>`+"\n", a.X, a.Y, b.X, b.Y, attrs))
}

// TrajectoryToSVG draws a body's path through the world. The path is broken
// wherever the body wrapped to the opposite edge.
func TrajectoryToSVG(points []dynamo.Vec2, bounds dynamo.Bounds, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		bounds.Width, bounds.Height, bounds.Width, bounds.Height, strokeColor))

	for i, p := range points {
		if i == 0 || wrapped(points[i-1], p, bounds) {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func wrapped(a, b dynamo.Vec2, bounds dynamo.Bounds) bool {
	return math.Abs(b.X-a.X) > bounds.Width/2 || math.Abs(b.Y-a.Y) > bounds.Height/2
}
