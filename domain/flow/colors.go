package flow

import "strings"

// ColorCategory is the display-color bucket a node falls into.
type ColorCategory string

const (
	ColorWarmRed     ColorCategory = "warm-red"
	ColorCoolBlue    ColorCategory = "cool-blue"
	ColorOrange      ColorCategory = "orange"
	ColorGreen       ColorCategory = "green"
	ColorPurple      ColorCategory = "purple"
	ColorNeutralGray ColorCategory = "neutral-gray"
)

var categoryRGBA = map[ColorCategory]string{
	ColorWarmRed:     "rgba(255, 99, 71, 0.8)",
	ColorCoolBlue:    "rgba(70, 130, 180, 0.8)",
	ColorOrange:      "rgba(255, 165, 0, 0.8)",
	ColorGreen:       "rgba(34, 139, 34, 0.8)",
	ColorPurple:      "rgba(148, 0, 211, 0.8)",
	ColorNeutralGray: "rgba(128, 128, 128, 0.8)",
}

// RGBA returns the CSS color string the rendering layer uses for the
// category.
func (c ColorCategory) RGBA() string {
	if rgba, ok := categoryRGBA[c]; ok {
		return rgba
	}
	return categoryRGBA[ColorNeutralGray]
}

// ColorFor classifies a node label. The rule order matters and the class
// lists are a closed table: lipid classes outside them fall through to
// neutral-gray, as do gene identifiers.
func ColorFor(label string) ColorCategory {
	switch {
	case strings.Contains(label, "Upregulated"):
		return ColorWarmRed
	case strings.Contains(label, "Downregulated"):
		return ColorCoolBlue
	case label == "PC" || label == "LPC" || label == "PE" || label == "LPE":
		return ColorOrange
	case label == "DG" || label == "TG":
		return ColorGreen
	case label == "SM" || label == "CAR":
		return ColorPurple
	default:
		return ColorNeutralGray
	}
}
