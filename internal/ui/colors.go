package ui

// Color accessor functions return the ANSI escape code for the named
// category from the currently active theme. They are the presentation
// layer's only coupling to theming: callers interpolate them directly into
// formatted output and terminate with ColorReset.

// ColorPrimary returns the primary accent color code.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorSecondary returns the secondary color code.
func ColorSecondary() string { return GetCurrentTheme().Secondary }

// ColorGreen returns the success color code.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color code.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorRed returns the error color code.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorBlue returns the info color code.
func ColorBlue() string { return GetCurrentTheme().Info }

// ColorBold returns the bold escape code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset returns the reset escape code.
func ColorReset() string { return GetCurrentTheme().Reset }
