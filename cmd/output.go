package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/echoflaresat/earthframes/vectors"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

func printField(w io.Writer, label, format string, args ...any) {
	fmt.Fprintln(w, labelStyle.Render(label)+valueStyle.Render(fmt.Sprintf(format, args...)))
}

func printVector(w io.Writer, label string, v vectors.Vec3) {
	printField(w, label, "%.4f %.4f %.4f", v.X, v.Y, v.Z)
}

func printNote(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, noteStyle.Render(fmt.Sprintf(format, args...)))
}
