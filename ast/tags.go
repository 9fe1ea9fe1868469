package ast

// --- Boolean toggles -------------------------------------------------------

// Italics is \i0 or \i1.
type Italics struct{ Enabled bool }

// Underline is \u0 or \u1.
type Underline struct{ Enabled bool }

// Strikeout is \s0 or \s1.
type Strikeout struct{ Enabled bool }

// Bold is \b0 or \b1. The weighted form \bNNN is BoldWeight.
type Bold struct{ Enabled bool }

// BoldWeight is \b with a font weight, e.g. \b700.
type BoldWeight struct{ Weight int }

// --- Sizes and offsets -----------------------------------------------------

// Border is \bord.
type Border struct{ Size float64 }

// BorderX is \xbord.
type BorderX struct{ Size float64 }

// BorderY is \ybord.
type BorderY struct{ Size float64 }

// Shadow is \shad.
type Shadow struct{ Size float64 }

// ShadowX is \xshad.
type ShadowX struct{ Size float64 }

// ShadowY is \yshad.
type ShadowY struct{ Size float64 }

// LetterSpacing is \fsp.
type LetterSpacing struct{ Value float64 }

// FontSize is \fs.
type FontSize struct{ Size float64 }

// BaselineOffset is \pbo.
type BaselineOffset struct{ Value float64 }

// FontScaleX is \fscx, in percent.
type FontScaleX struct{ Scale float64 }

// FontScaleY is \fscy, in percent.
type FontScaleY struct{ Scale float64 }

// --- Rotation and shearing -------------------------------------------------

// RotationX is \frx.
type RotationX struct{ Angle float64 }

// RotationY is \fry.
type RotationY struct{ Angle float64 }

// RotationZ is \frz, or \fr if Short is set.
type RotationZ struct {
	Angle float64
	Short bool
}

// ShearX is \fax.
type ShearX struct{ Value float64 }

// ShearY is \fay.
type ShearY struct{ Value float64 }

// --- Blur ------------------------------------------------------------------

// BlurEdges is \be, the number of times edge blurring is applied.
type BlurEdges struct{ Times int }

// BlurEdgesGauss is \blur, the strength of a gaussian blur.
type BlurEdgesGauss struct{ Weight float64 }

// --- Fonts -----------------------------------------------------------------

// FontName is \fn. An empty name resets to the style's font.
type FontName struct{ Name string }

// FontEncoding is \fe.
type FontEncoding struct{ Encoding int }

// --- Colors and transparency -----------------------------------------------

// ColorTarget selects which of the four colors of a style a color tag changes.
type ColorTarget int8

// Colors of a style, as numbered in \1c…\4c.
const (
	ColorPrimary ColorTarget = iota + 1
	ColorSecondary
	ColorBorder
	ColorShadow
)

// Color is \1c…\4c, or \c for the primary color if Short is set.
// Components are stored in RGB order, although ASS spells them as BGR.
type Color struct {
	Target ColorTarget
	Red    uint8
	Green  uint8
	Blue   uint8
	Short  bool
}

// AlphaTarget selects which of a style's colors an alpha tag changes.
type AlphaTarget int8

// AlphaAll is \alpha, the other targets are numbered as in \1a…\4a.
const (
	AlphaAll AlphaTarget = iota
	AlphaPrimary
	AlphaSecondary
	AlphaBorder
	AlphaShadow
)

// Alpha is \alpha or \1a…\4a. A nil Value resets transparency to the style's.
type Alpha struct {
	Target AlphaTarget
	Value  *uint8
}

// --- Karaoke ---------------------------------------------------------------

// KaraokeEffect distinguishes the karaoke tags.
type KaraokeEffect int8

// Karaoke effects, in the order karaoke-1 … karaoke-4.
const (
	KaraokeFill     KaraokeEffect = iota + 1 // \k
	KaraokeSweep                             // \K
	KaraokeSweepAlt                          // \kf
	KaraokeOutline                           // \ko
)

// Karaoke is \k, \K, \kf or \ko. Duration is in hundredths of a second,
// whereas the tag's argument is in tenths.
type Karaoke struct {
	Effect   KaraokeEffect
	Duration int
}

// --- Layout ----------------------------------------------------------------

// Alignment is \an, or \a if Legacy is set. Alignment always is a numpad
// position 1…9; Legacy only selects the spelling.
type Alignment struct {
	Alignment int
	Legacy    bool
}

// WrapStyle is \q.
type WrapStyle struct{ Style int }

// ResetStyle is \r. An empty Style resets to the line's own style.
type ResetStyle struct{ Style string }

// Position is \pos.
type Position struct{ X, Y float64 }

// RotationOrigin is \org.
type RotationOrigin struct{ X, Y float64 }

// Movement is \move.
type Movement struct {
	X1, Y1 float64
	X2, Y2 float64
	// Start and End are either both set or both nil. If only one of them is
	// set, both are left out when composing.
	Start, End *int
}

// --- Fades and animation ---------------------------------------------------

// Fade is \fad.
type Fade struct{ Start, End int }

// FadeComplex is \fade.
type FadeComplex struct {
	Alpha1, Alpha2, Alpha3     uint8
	Time1, Time2, Time3, Time4 int
}

// Animation is \t. Tags holds the animated tags in application order.
type Animation struct {
	// Start and End are either both set or both nil. If only one of them is
	// set, both are left out when composing.
	Start, End *int
	Accel      *float64
	Tags       []Tag
}

// --- Clipping and drawing --------------------------------------------------

// ClipRectangle is \clip or \iclip with rectangle coordinates.
type ClipRectangle struct {
	X1, Y1, X2, Y2 float64
	Inverse        bool
}

// ClipVector is \clip or \iclip with drawing commands.
type ClipVector struct {
	Scale    *int
	Inverse  bool
	Commands string
}

// DrawingMode is \p.
type DrawingMode struct{ Scale int }

// --- Kinds -----------------------------------------------------------------

func (*Italics) Kind() string        { return "italics" }
func (*Underline) Kind() string      { return "underline" }
func (*Strikeout) Kind() string      { return "strikeout" }
func (*Bold) Kind() string           { return "bold" }
func (*BoldWeight) Kind() string     { return "bold" }
func (*Border) Kind() string         { return "border" }
func (*BorderX) Kind() string        { return "border-x" }
func (*BorderY) Kind() string        { return "border-y" }
func (*Shadow) Kind() string         { return "shadow" }
func (*ShadowX) Kind() string        { return "shadow-x" }
func (*ShadowY) Kind() string        { return "shadow-y" }
func (*LetterSpacing) Kind() string  { return "letter-spacing" }
func (*FontSize) Kind() string       { return "font-size" }
func (*BaselineOffset) Kind() string { return "baseline-offset" }
func (*FontScaleX) Kind() string     { return "font-scale-x" }
func (*FontScaleY) Kind() string     { return "font-scale-y" }
func (*RotationX) Kind() string      { return "rotation-x" }
func (*RotationY) Kind() string      { return "rotation-y" }
func (*RotationZ) Kind() string      { return "rotation-z" }
func (*ShearX) Kind() string         { return "shear-x" }
func (*ShearY) Kind() string         { return "shear-y" }
func (*BlurEdges) Kind() string      { return "blur-edges" }
func (*BlurEdgesGauss) Kind() string { return "blur-edges-gauss" }
func (*FontName) Kind() string       { return "font-name" }
func (*FontEncoding) Kind() string   { return "font-encoding" }
func (*WrapStyle) Kind() string      { return "wrap-style" }
func (*ResetStyle) Kind() string     { return "reset-style" }
func (*Position) Kind() string       { return "position" }
func (*RotationOrigin) Kind() string { return "rotation-origin" }
func (*Movement) Kind() string       { return "movement" }
func (*Fade) Kind() string           { return "fade-simple" }
func (*FadeComplex) Kind() string    { return "fade-complex" }
func (*Animation) Kind() string      { return "animation" }
func (*ClipRectangle) Kind() string  { return "clip-rectangle" }
func (*ClipVector) Kind() string     { return "clip-vector" }
func (*DrawingMode) Kind() string    { return "drawing-mode" }
func (*Alignment) Kind() string      { return "alignment" }

// Kind is "color-primary", "color-secondary", "color-border" or "color-shadow".
func (c *Color) Kind() string {
	switch c.Target {
	case ColorSecondary:
		return "color-secondary"
	case ColorBorder:
		return "color-border"
	case ColorShadow:
		return "color-shadow"
	}
	return "color-primary"
}

// Kind is "alpha-all", "alpha-primary", "alpha-secondary", "alpha-border" or
// "alpha-shadow".
func (a *Alpha) Kind() string {
	switch a.Target {
	case AlphaPrimary:
		return "alpha-primary"
	case AlphaSecondary:
		return "alpha-secondary"
	case AlphaBorder:
		return "alpha-border"
	case AlphaShadow:
		return "alpha-shadow"
	}
	return "alpha-all"
}

// Kind is "karaoke-1" … "karaoke-4".
func (k *Karaoke) Kind() string {
	switch k.Effect {
	case KaraokeSweep:
		return "karaoke-2"
	case KaraokeSweepAlt:
		return "karaoke-3"
	case KaraokeOutline:
		return "karaoke-4"
	}
	return "karaoke-1"
}

func (*Italics) isTag()        {}
func (*Underline) isTag()      {}
func (*Strikeout) isTag()      {}
func (*Bold) isTag()           {}
func (*BoldWeight) isTag()     {}
func (*Border) isTag()         {}
func (*BorderX) isTag()        {}
func (*BorderY) isTag()        {}
func (*Shadow) isTag()         {}
func (*ShadowX) isTag()        {}
func (*ShadowY) isTag()        {}
func (*LetterSpacing) isTag()  {}
func (*FontSize) isTag()       {}
func (*BaselineOffset) isTag() {}
func (*FontScaleX) isTag()     {}
func (*FontScaleY) isTag()     {}
func (*RotationX) isTag()      {}
func (*RotationY) isTag()      {}
func (*RotationZ) isTag()      {}
func (*ShearX) isTag()         {}
func (*ShearY) isTag()         {}
func (*BlurEdges) isTag()      {}
func (*BlurEdgesGauss) isTag() {}
func (*FontName) isTag()       {}
func (*FontEncoding) isTag()   {}
func (*Color) isTag()          {}
func (*Alpha) isTag()          {}
func (*Karaoke) isTag()        {}
func (*Alignment) isTag()      {}
func (*WrapStyle) isTag()      {}
func (*ResetStyle) isTag()     {}
func (*Position) isTag()       {}
func (*RotationOrigin) isTag() {}
func (*Movement) isTag()       {}
func (*Fade) isTag()           {}
func (*FadeComplex) isTag()    {}
func (*Animation) isTag()      {}
func (*ClipRectangle) isTag()  {}
func (*ClipVector) isTag()     {}
func (*DrawingMode) isTag()    {}
