package game

import (
	"image/color"

	"airspace/client/internal/game/layout"
)

const (
	pulseFrames  = 30 // ~0.5s at 60 TPS
	statusFrames = 120

	glyphW = 7 // basicfont.Face7x13 advance
	glyphH = 13
)

var (
	colPanelBG     = color.NRGBA{0x12, 0x1e, 0x33, 0xff}
	colPanelEdge   = color.NRGBA{0x4a, 0x90, 0xe2, 0x80}
	colText        = color.NRGBA{0xe0, 0xe0, 0xe0, 0xff}
	colDim         = color.NRGBA{0x90, 0x9a, 0xa8, 0xff}
	colHighlight   = color.NRGBA{0xff, 0xd7, 0x00, 0xff}
	colResolved    = color.NRGBA{0x4c, 0xaf, 0x50, 0xff}
	colResolving   = color.NRGBA{0xff, 0x44, 0x44, 0xff}
	colButton      = color.NRGBA{0x2a, 0x4a, 0x7a, 0xff}
	colButtonHover = color.NRGBA{0x3a, 0x62, 0x9e, 0xff}
	colShade       = color.NRGBA{0, 0, 0, 0xa0}
	colOverlay     = color.NRGBA{0x1c, 0x24, 0x38, 0xf0}
)

type rect = layout.Rect
