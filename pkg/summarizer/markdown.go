package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders a Summary as a Markdown document of tables.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate headings and labels.
func WithTranslator(translate func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = translate
	}
}

// WithVersion adds the program version to the document header.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a formatter. Labels are English unless a translator is set.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Timelapse Summary"))
	fmt.Fprintf(&b, "%s: %s", t("Generated"), s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if f.version != "" {
		fmt.Fprintf(&b, " (lapse %s)", f.version)
	}
	b.WriteString("\n\n")

	f.section(&b, "Input", [][2]string{
		{"File", orDash(s.Input.Path)},
		{"Codec", orDash(s.Input.Codec)},
		{"Resolution", resolution(s.Input.Width, s.Input.Height)},
		{"Frame Rate", f.rate(s.Input.FPS)},
		{"Frames", f.count(s.Input.FrameCount)},
		{"Key Frames", f.count(s.Input.KeyFrameCount)},
	})

	workers := t("Auto")
	if s.Settings.Workers > 0 {
		workers = fmt.Sprintf("%d", s.Settings.Workers)
	}
	f.section(&b, "Settings", [][2]string{
		{"Mode", orDash(s.Settings.Mode)},
		{"Window Size", fmt.Sprintf("%d", s.Settings.WindowSize)},
		{"Frame Skip", fmt.Sprintf("%d", s.Settings.FrameSkip)},
		{"Key Frames Only", f.yesNo(s.Settings.KeyFramesOnly)},
		{"Workers", workers},
	})

	mean, max := t("N/A"), t("N/A")
	if s.Selection.ScoredWindows > 0 {
		mean = fmt.Sprintf("%.2f", s.Selection.MeanDistance)
		max = fmt.Sprintf("%.2f", s.Selection.MaxDistance)
	}
	f.section(&b, "Selection", [][2]string{
		{"Windows", fmt.Sprintf("%d", s.Selection.Windows)},
		{"Frames Decoded", fmt.Sprintf("%d", s.Selection.FramesDecoded)},
		{"Frames Selected", fmt.Sprintf("%d", s.Selection.FramesSelected)},
		{"Mean Distance", mean},
		{"Max Distance", max},
		{"Elapsed", fmt.Sprintf("%.2f s", s.Selection.Elapsed.Seconds())},
	})

	bitrate := t("Default")
	if s.Video.Bitrate > 0 {
		bitrate = fmt.Sprintf("%d kbps", s.Video.Bitrate)
	}
	f.section(&b, "Output", [][2]string{
		{"File", orDash(s.Video.Path)},
		{"Codec", strings.ToUpper(orDash(s.Video.Codec))},
		{"CRF", fmt.Sprintf("%d", s.Video.CRF)},
		{"Bitrate", bitrate},
		{"Frame Rate", f.rate(s.Video.FPS)},
		{"Frames", fmt.Sprintf("%d", s.Video.FrameCount)},
		{"Duration", fmt.Sprintf("%d ms", s.Video.DurationMs())},
		{"File Size", formatBytes(s.Video.FileSize)},
	})

	return b.String()
}

func (f *MarkdownFormatter) section(b *strings.Builder, title string, rows [][2]string) {
	t := f.translate
	fmt.Fprintf(b, "## %s\n\n", t(title))
	fmt.Fprintf(b, "| %s | %s |\n", t("Item"), t("Value"))
	b.WriteString("|------|-------|\n")
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", t(row[0]), row[1])
	}
	b.WriteString("\n")
}

func (f *MarkdownFormatter) count(n int) string {
	if n < 0 {
		return f.translate("Unknown")
	}
	return fmt.Sprintf("%d", n)
}

func (f *MarkdownFormatter) rate(fps float64) string {
	if fps <= 0 {
		return f.translate("Unknown")
	}
	return fmt.Sprintf("%.2f fps", fps)
}

func (f *MarkdownFormatter) yesNo(v bool) string {
	if v {
		return f.translate("Yes")
	}
	return f.translate("No")
}

func resolution(w, h int) string {
	if w <= 0 || h <= 0 {
		return "-"
	}
	return fmt.Sprintf("%dx%d", w, h)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatBytes formats a byte count with binary units.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < 2; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMG"[exp])
}

var _ Formatter = (*MarkdownFormatter)(nil)
