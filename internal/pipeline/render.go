package pipeline

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/shouni/go-sprite-kit/pkg/domain"
)

const promptPreviewLength = 50

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	idStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

func header(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf(format, args...)))
	fmt.Fprintln(w)
}

func field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "    %s %v\n", labelStyle.Render(label+":"), value)
}

func renderStaging(w io.Writer, metas []domain.AssetMetadata) {
	if len(metas) == 0 {
		fmt.Fprintln(w, "No staging assets.")
		return
	}
	header(w, "Staging assets (%d):", len(metas))
	for _, m := range metas {
		fmt.Fprintf(w, "  %s\n", idStyle.Render(m.ID))
		field(w, "Category", categoryLabel(m))
		field(w, "Name", m.Name)
		field(w, "Prompt", truncate(m.Prompt, promptPreviewLength))
		fmt.Fprintln(w)
	}
}

func renderUsed(w io.Writer, manifest domain.Manifest, category string) {
	keys := manifest.Keys(category)
	if len(keys) == 0 {
		if category != "" {
			fmt.Fprintf(w, "No used assets in category '%s'.\n", category)
		} else {
			fmt.Fprintln(w, "No used assets.")
		}
		return
	}
	header(w, "Used assets (%d):", len(keys))
	for _, k := range keys {
		e := manifest.Assets[k]
		fmt.Fprintf(w, "  %s\n", idStyle.Render(k))
		field(w, "Path", e.Path)
		field(w, "Size", fmt.Sprintf("%dx%d", e.Size, e.Size))
		field(w, "Frames", e.Frames)
		fmt.Fprintln(w)
	}
}

func renderAlternatives(w io.Writer, metas []domain.AssetMetadata) {
	if len(metas) == 0 {
		fmt.Fprintln(w, "No alternative assets.")
		return
	}
	header(w, "Alternative assets (%d):", len(metas))
	for _, m := range metas {
		reason := m.RejectionReason
		if reason == "" {
			reason = "N/A"
		}
		fmt.Fprintf(w, "  %s\n", idStyle.Render(m.ID))
		field(w, "Original", categoryLabel(m)+"/"+m.Name)
		field(w, "Reason", warnStyle.Render(reason))
		fmt.Fprintln(w)
	}
}

func categoryLabel(m domain.AssetMetadata) string {
	if m.Subcategory != "" {
		return m.Category + "/" + m.Subcategory
	}
	return m.Category
}

// truncate はルーン単位で切り詰め、切り詰めた場合だけ "..." を付けるのだ。
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n])) + "..."
}
