package viz

import "strings"

// heatRamp maps increasing inner products onto denser glyphs.
const heatRamp = " .:-=+*#%@"

// Heatmap renders an inner-product matrix as ASCII, one glyph per entry.
// Values are expected in [-1, 1]; out-of-range values clamp.
func Heatmap(m [][]float64) string {
	if len(m) == 0 {
		return ""
	}

	var sb strings.Builder
	ramp := []rune(heatRamp)

	for _, row := range m {
		for _, v := range row {
			if v < -1 {
				v = -1
			}
			if v > 1 {
				v = 1
			}
			idx := int((v + 1) / 2 * float64(len(ramp)-1))
			sb.WriteRune(ramp[idx])
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
