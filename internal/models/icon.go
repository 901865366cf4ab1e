package models

import "strings"

// Icon names one of the fixed glyphs used by services and tools.
type Icon string

const (
	IconCode         Icon = "code"
	IconDesign       Icon = "design"
	IconPalette      Icon = "palette"
	IconCamera       Icon = "camera"
	IconVideo        Icon = "video"
	IconMegaphone    Icon = "megaphone"
	IconLayout       Icon = "layout"
	IconPen          Icon = "pen"
	IconGlobe        Icon = "globe"
	IconSmartphone   Icon = "smartphone"
	IconFigma        Icon = "figma"
	IconPhotoshop    Icon = "photoshop"
	IconIllustrator  Icon = "illustrator"
	IconPremiere     Icon = "premiere"
	IconAfterEffects Icon = "aftereffects"
	IconBlender      Icon = "blender"
	IconGithub       Icon = "github"
	IconUnknown      Icon = "unknown"
)

// ParseIcon normalizes a stored icon name. Unrecognized names map to IconUnknown.
func ParseIcon(name string) Icon {
	i := Icon(strings.ToLower(strings.TrimSpace(name)))
	if i.SVGPath() == "" {
		return IconUnknown
	}
	return i
}

// SVGPath returns the path data of a 24×24 outline glyph, or "" for unknown names.
func (i Icon) SVGPath() string {
	switch i {
	case IconCode:
		return "M16 18l6-6-6-6M8 6l-6 6 6 6"
	case IconDesign, IconPen:
		return "M12 19l7-7 3 3-7 7-3-3zM18 13l-1.5-7.5L2 2l3.5 14.5L13 18l5-5zM2 2l7.6 7.6"
	case IconPalette:
		return "M12 2a10 10 0 100 20c1.1 0 2-.9 2-2 0-.5-.2-1-.5-1.3-.3-.4-.5-.8-.5-1.3 0-1.1.9-2 2-2h2.4A5.6 5.6 0 0022 9.8C22 5.5 17.5 2 12 2z"
	case IconCamera:
		return "M23 19a2 2 0 01-2 2H3a2 2 0 01-2-2V8a2 2 0 012-2h4l2-3h6l2 3h4a2 2 0 012 2zM12 17a4 4 0 100-8 4 4 0 000 8z"
	case IconVideo, IconPremiere, IconAfterEffects:
		return "M23 7l-7 5 7 5V7zM1 5h15v14H1z"
	case IconMegaphone:
		return "M3 11l18-5v12L3 14v-3zM11.6 16.8a3 3 0 11-5.8-1.6"
	case IconLayout:
		return "M3 3h18v18H3zM3 9h18M9 21V9"
	case IconGlobe:
		return "M12 22a10 10 0 100-20 10 10 0 000 20zM2 12h20M12 2a15.3 15.3 0 010 20 15.3 15.3 0 010-20z"
	case IconSmartphone:
		return "M5 2h14v20H5zM12 18h.01"
	case IconFigma:
		return "M5 5.5A3.5 3.5 0 018.5 2H12v7H8.5A3.5 3.5 0 015 5.5zM12 2h3.5a3.5 3.5 0 110 7H12V2zM12 12.5a3.5 3.5 0 117 0 3.5 3.5 0 11-7 0zM5 19.5A3.5 3.5 0 018.5 16H12v3.5a3.5 3.5 0 11-7 0zM5 12.5A3.5 3.5 0 018.5 9H12v7H8.5A3.5 3.5 0 015 12.5z"
	case IconPhotoshop, IconIllustrator:
		return "M3 3h18v18H3zM7 16V8h3a2 2 0 010 4H7M14 16l2-8 2 8M14.5 14h3"
	case IconBlender:
		return "M12 21a7 7 0 100-14 7 7 0 000 14zM12 16a2 2 0 100-4 2 2 0 000 4zM5 7l7 0"
	case IconGithub:
		return "M9 19c-5 1.5-5-2.5-7-3m14 6v-3.9a3.4 3.4 0 00-.9-2.6c3.1-.3 6.4-1.5 6.4-7A5.4 5.4 0 0020 4.8 5 5 0 0019.9 1S18.7.7 16 2.5a13.4 13.4 0 00-7 0C6.3.7 5.1 1 5.1 1A5 5 0 005 4.8a5.4 5.4 0 00-1.5 3.7c0 5.4 3.3 6.6 6.4 7a3.4 3.4 0 00-.9 2.6V22"
	case IconUnknown:
		return "M12 22a10 10 0 100-20 10 10 0 000 20zM9.1 9a3 3 0 015.8 1c0 2-3 3-3 3M12 17h.01"
	}
	return ""
}
