// Package assets embeds the static resources of the application.
package assets

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed logo.svg
var logoSVG []byte

// ResourceAppLogo is the application and window icon
var ResourceAppLogo fyne.Resource = fyne.NewStaticResource("logo.svg", logoSVG)
