package ui

import (
	"fmt"
	"strings"

	"streampick/internal/catalog"
	"streampick/internal/merge"
	"streampick/internal/model"
	format "streampick/internal/util/format"
)

var paneTitles = [paneCount]string{"Video candidates", "Video only", "Audio only", "Subtitles"}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("✗ " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	if m.resolving || m.session == nil {
		b.WriteString(m.styles.Spinner.Render(m.spinner.View()))
		b.WriteString(" ")
		b.WriteString(m.styles.Faint.Render(m.status))
		b.WriteString("\n")
		return b.String()
	}

	for pane := 0; pane < paneCount; pane++ {
		b.WriteString(m.viewPane(pane))
		b.WriteString("\n")
	}
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m Model) viewHeader() string {
	title := m.styles.Title.Render("streampick — format picker")
	line := "q: quit • tab: pane • enter: pick • s: suggested • c: chapters • d: done"
	if m.session != nil && m.session.Meta.Title != "" {
		line = truncate(m.session.Meta.Title, 60) + " • " + line
	}
	return title + "\n" + m.styles.Subtitle.Render(line)
}

func (m Model) viewPane(pane int) string {
	title := paneTitles[pane]
	style := m.styles.Pane
	if pane == m.pane {
		style = m.styles.PaneOn
	}
	var b strings.Builder
	b.WriteString(style.Render(title))
	if pane == paneCandidates && m.sel != nil && m.sel.SuggestedSelected() {
		b.WriteString(" " + m.styles.Badge.Render("[suggested]"))
	}
	b.WriteString("\n")

	n := m.paneLen(pane)
	if n == 0 {
		b.WriteString(m.styles.Faint.Render("  (none)"))
		b.WriteString("\n")
		return b.String()
	}
	for i := 0; i < n; i++ {
		b.WriteString(m.viewRow(pane, i))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewRow(pane, i int) string {
	cursor := "  "
	if pane == m.pane && i == m.cursor[pane] {
		cursor = m.styles.Cursor.Render("› ")
	}
	mark := " "
	if m.rowPicked(pane, i) {
		mark = m.styles.RowPick.Render("✓")
	}
	return fmt.Sprintf("%s%s %s", cursor, mark, m.styles.Row.Render(m.rowLabel(pane, i)))
}

func (m Model) rowPicked(pane, i int) bool {
	if m.sel == nil {
		return false
	}
	switch pane {
	case paneCandidates:
		idx, ok := m.sel.CombinedIndex()
		return ok && idx == i
	case paneVideoOnly:
		idx, ok := m.sel.VideoOnlyIndex()
		return ok && idx == i
	case paneAudioOnly:
		return m.sel.AudioOnlySelected(i)
	case paneSubtitles:
		return i < len(m.subCodes) && m.subSelected[m.subCodes[i]]
	}
	return false
}

func (m Model) rowLabel(pane, i int) string {
	switch pane {
	case paneCandidates:
		return candidateLabel(m.session.Candidates[i])
	case paneVideoOnly:
		return formatLabel(m.session.VideoOnly[i])
	case paneAudioOnly:
		return formatLabel(m.session.AudioOnly[i])
	case paneSubtitles:
		code := m.subCodes[i]
		if list := m.session.Meta.Subtitles[code]; len(list) > 0 && list[0].Name != "" {
			return code + " — " + list[0].Name
		}
		return code
	}
	return ""
}

func (m Model) viewFooter() string {
	parts := []string{}
	if m.splitByChapter {
		parts = append(parts, "split by chapter: on")
	}
	if m.sel != nil && !m.sel.Empty() {
		parts = append(parts, "selection active")
	}
	if len(parts) == 0 {
		return m.styles.Faint.Render(m.status)
	}
	return m.styles.Faint.Render(m.status + " • " + strings.Join(parts, " • "))
}

func candidateLabel(c merge.Candidate) string {
	label := formatLabel(c.Format)
	if c.Merged() {
		label += " + " + c.Audio.ID + " (merge)"
	}
	return label
}

func formatLabel(f model.Format) string {
	var parts []string
	parts = append(parts, f.ID)
	if w, h, ok := catalog.Resolve(f); ok {
		parts = append(parts, fmt.Sprintf("%dx%d", w, h))
	} else if f.Label != "" {
		parts = append(parts, truncate(f.Label, 24))
	}
	if f.Extension != "" {
		parts = append(parts, f.Extension)
	}
	if size := pickSize(f); size > 0 {
		parts = append(parts, format.HumanizeBytes(size))
	}
	if !f.HasVideo() && f.BitrateKbps > 0 {
		parts = append(parts, format.HumanizeBitrate(f.BitrateKbps))
	}
	return strings.Join(parts, " • ")
}

func pickSize(f model.Format) int64 {
	if f.FileSizeBytes > 0 {
		return f.FileSizeBytes
	}
	return f.FileSizeApproxBytes
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if n <= 0 || len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
