// Package theme provides the dark application theme.
package theme

import (
	"image/color"

	"MediaConverter/assets"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	accent     = color.NRGBA{R: 0xc2, G: 0x14, B: 0x3d, A: 0xff} // #C2143D
	background = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}
	white      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	pressed    = color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff}
)

var darkColors = map[fyne.ThemeColorName]color.Color{
	theme.ColorNameBackground:          background,
	theme.ColorNameButton:              background,
	theme.ColorNameDisabledButton:      color.NRGBA{R: 0x3a, G: 0x3a, B: 0x3a, A: 0xff},
	theme.ColorNameDisabled:            color.NRGBA{R: 0x96, G: 0x96, B: 0x96, A: 0xff},
	theme.ColorNameError:               accent,
	theme.ColorNameFocus:               accent,
	theme.ColorNameForeground:          white,
	theme.ColorNameForegroundOnError:   white,
	theme.ColorNameForegroundOnPrimary: white,
	theme.ColorNameHeaderBackground:    color.NRGBA{R: 0x3a, G: 0x3a, B: 0x3a, A: 0xff},
	theme.ColorNameHover:               color.NRGBA{R: 0x47, G: 0x47, B: 0x47, A: 0xff},
	theme.ColorNameInputBackground:     color.NRGBA{A: 0xff},
	theme.ColorNameInputBorder:         pressed,
	theme.ColorNameMenuBackground:      color.NRGBA{R: 0x29, G: 0x29, B: 0x2e, A: 0xff},
	theme.ColorNameOverlayBackground:   pressed,
	theme.ColorNamePlaceHolder:         color.NRGBA{R: 0xb3, G: 0xb3, B: 0xb3, A: 0xff},
	theme.ColorNamePressed:             pressed,
	theme.ColorNamePrimary:             accent,
	theme.ColorNameScrollBar:           color.NRGBA{R: 0x42, G: 0x42, B: 0x42, A: 0xff},
	theme.ColorNameSelection:           accent,
	theme.ColorNameSeparator:           color.NRGBA{A: 0xff},
	theme.ColorNameShadow:              color.NRGBA{A: 0x42},
	theme.ColorNameSuccess:             color.NRGBA{R: 0x43, G: 0xf4, B: 0x36, A: 0xff},
	theme.ColorNameWarning:             color.NRGBA{R: 0xff, G: 0x98, B: 0x00, A: 0xff},
}

var sizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNameSeparatorThickness: 1,
	theme.SizeNameInlineIcon:         20,
	theme.SizeNameInnerPadding:       8,
	theme.SizeNameLineSpacing:        6,
	theme.SizeNamePadding:            2,
	theme.SizeNameScrollBar:          12,
	theme.SizeNameScrollBarSmall:     12,
	theme.SizeNameText:               15,
	theme.SizeNameHeadingText:        24,
	theme.SizeNameSubHeadingText:     18,
	theme.SizeNameCaptionText:        11,
	theme.SizeNameInputBorder:        1,
	theme.SizeNameInputRadius:        8,
	theme.SizeNameSelectionRadius:    8,
}

// appTheme forces the dark variant and overrides colors and sizes of the default theme
type appTheme struct {
	base fyne.Theme
}

func (t *appTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if c, ok := darkColors[name]; ok {
		return c
	}
	return t.base.Color(name, theme.VariantDark)
}

func (t *appTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *appTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *appTheme) Size(name fyne.ThemeSizeName) float32 {
	if s, ok := sizes[name]; ok {
		return s
	}
	return t.base.Size(name)
}

// NewCustomTheme returns the dark theme used regardless of system settings
func NewCustomTheme() fyne.Theme {
	return &appTheme{base: theme.DefaultTheme()}
}

// AppIcon returns the application icon
func AppIcon() fyne.Resource {
	return assets.ResourceAppLogo
}
