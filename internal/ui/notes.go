package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PolarWolf314/theca/internal/notes"
	"github.com/mattn/go-runewidth"
)

// Timestamp layouts used when printing notes.
const (
	TimeLayout          = "2006-01-02 15:04:05 -0700"
	CondensedTimeLayout = "2006-01-02 15:04"
)

// minTitleWidth keeps titles readable on very narrow terminals.
const minTitleWidth = 10

// bodyMarker is appended to titles of notes that have a body.
const bodyMarker = " (+)"

// StatusLabel returns the plain status column text. None is blank.
func StatusLabel(s notes.Status, condensed bool) string {
	if s == notes.StatusNone {
		return ""
	}
	if condensed {
		return s.String()[:1]
	}
	return s.String()
}

func styleStatus(s notes.Status, label string) string {
	switch s {
	case notes.StatusStarted:
		return Warning.Sprint(label)
	case notes.StatusUrgent:
		return Urgent.Sprint(label)
	}
	return label
}

// TableOptions controls WriteTable.
type TableOptions struct {
	Condensed bool
	// Width is the terminal width in cells. 0 disables truncation.
	Width int
}

// WriteTable prints notes as aligned columns under a header.
func WriteTable(w io.Writer, list []notes.Note, opts TableOptions) error {
	layout := TimeLayout
	statusHeader := "status"
	if opts.Condensed {
		layout = CondensedTimeLayout
		statusHeader = "s"
	}

	idWidth := len("id")
	statusWidth := len(statusHeader)
	for _, n := range list {
		idWidth = max(idWidth, len(strconv.FormatUint(n.ID, 10)))
		statusWidth = max(statusWidth, len(StatusLabel(n.Status, opts.Condensed)))
	}
	dateWidth := len(layout)

	titles := make([]string, len(list))
	titleWidth := len("title")
	for i, n := range list {
		titles[i] = n.Title
		if !opts.Condensed && n.Body != "" {
			titles[i] += bodyMarker
		}
		titleWidth = max(titleWidth, runewidth.StringWidth(titles[i]))
	}
	if opts.Width > 0 {
		room := opts.Width - idWidth - statusWidth - dateWidth - 3*2
		titleWidth = min(titleWidth, max(room, minTitleWidth))
	}

	header := fmt.Sprintf("%-*s  %s  %-*s  %s",
		idWidth, "id", runewidth.FillRight("title", titleWidth), statusWidth, statusHeader, "last touched")
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, Muted.color.Sprint(strings.Repeat("-", runewidth.StringWidth(header)))); err != nil {
		return err
	}

	for i, n := range list {
		title := runewidth.FillRight(runewidth.Truncate(titles[i], titleWidth, "..."), titleWidth)
		status := StatusLabel(n.Status, opts.Condensed)
		status = styleStatus(n.Status, status) + strings.Repeat(" ", statusWidth-len(status))

		if _, err := fmt.Fprintf(w, "%*d  %s  %s  %s\n",
			idWidth, n.ID, title, status, n.LastTouched.Format(layout)); err != nil {
			return err
		}
	}
	return nil
}

// WriteNote prints a single note with its body.
func WriteNote(w io.Writer, n notes.Note, condensed bool) error {
	layout := TimeLayout
	if condensed {
		layout = CondensedTimeLayout
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Muted.color.Sprintf("#%d", n.ID), Highlight.color.Sprint(n.Title))
	if status := StatusLabel(n.Status, false); status != "" {
		fmt.Fprintf(&b, "status:       %s\n", styleStatus(n.Status, status))
	}
	fmt.Fprintf(&b, "last touched: %s\n", n.LastTouched.Format(layout))
	if n.Body != "" {
		if !condensed {
			b.WriteString(Muted.color.Sprint(strings.Repeat("-", 20)) + "\n")
		}
		b.WriteString(EnsureNewline(n.Body))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
