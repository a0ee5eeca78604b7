// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"
	"sort"

	lipgloss "charm.land/lipgloss/v2"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// Generic text styles.
	TextPrimaryStyle        lipgloss.Style
	TextPrimaryBoldStyle    lipgloss.Style
	TextForegroundStyle     lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextMutedStyle          lipgloss.Style
	TextSurfaceStyle        lipgloss.Style
	TextSuccessStyle        lipgloss.Style
	TextWarningStyle        lipgloss.Style
	TextErrorStyle          lipgloss.Style

	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style

	// Modal styles.
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style

	// Quote card styles.
	CardStyle            lipgloss.Style
	CardSelectedStyle    lipgloss.Style
	CardHiddenStyle      lipgloss.Style
	CardMetaStyle        lipgloss.Style
	CardQuoteStyle       lipgloss.Style
	PillStyle            lipgloss.Style
	PillActiveStyle      lipgloss.Style
	QuestionBlockStyle   lipgloss.Style
	QuestionSpeakerStyle lipgloss.Style
	QuestionTextStyle    lipgloss.Style
	ExpandHintStyle      lipgloss.Style
	ContextStyle         lipgloss.Style
	TagStyle             lipgloss.Style
	TagFlashStyle        lipgloss.Style
	BadgeDeletedStyle    lipgloss.Style
	ProposedTagStyle     lipgloss.Style
	StarStyle            lipgloss.Style

	// Form styles.
	FormTitleStyle        lipgloss.Style
	FormFieldStyle        lipgloss.Style
	FormFieldFocusedStyle lipgloss.Style

	// Toast styles.
	ToastStyle     lipgloss.Style
	ToastInfoStyle lipgloss.Style
	ToastWarnStyle lipgloss.Style
	ToastErrStyle  lipgloss.Style

	// List help line.
	HelpStyle lipgloss.Style
)

// ColorPool is used for deterministic color hashing of topics and speakers.
var ColorPool []color.Color

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	TextPrimaryStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	TextForegroundStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TextForegroundBoldStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TextSurfaceStyle = lipgloss.NewStyle().Foreground(ColorSurface)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextWarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	TextErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	CardSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	CardHiddenStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Strikethrough(true)
	CardMetaStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	CardQuoteStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)

	PillStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorSecondary)
	PillActiveStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)

	QuestionBlockStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(ColorSecondary).
		PaddingLeft(1)
	QuestionSpeakerStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	QuestionTextStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Italic(true)
	ExpandHintStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ContextStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	TagStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorForeground)
	TagFlashStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorWarning).
		Foreground(ColorBackground).
		Bold(true)
	BadgeDeletedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(ColorMuted).
		Strikethrough(true)
	ProposedTagStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(ColorWarning)
	StarStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)

	FormTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	FormFieldStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	FormFieldFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)

	ToastStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	ToastInfoStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	ToastWarnStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ToastErrStyle = lipgloss.NewStyle().Foreground(ColorError)

	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ColorPool = []color.Color{
		ColorPrimary,
		ColorSecondary,
		ColorSuccess,
		ColorWarning,
		ColorError,
		ColorMuted,
	}
}

// ColorForString returns a deterministic color for a given string.
// The same string always produces the same color.
func ColorForString(s string) color.Color {
	var hash uint32
	for _, c := range s {
		hash = hash*31 + uint32(c)
	}
	return ColorPool[hash%uint32(len(ColorPool))]
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

func colorHexPtr(c color.Color) *string {
	if c == nil {
		return nil
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := colorHexPtr(ColorForeground)
	primary := colorHexPtr(ColorPrimary)
	secondary := colorHexPtr(ColorSecondary)
	muted := colorHexPtr(ColorMuted)
	surface := colorHexPtr(ColorSurface)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = surface
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	cfg.Table.Color = fg

	return cfg
}
