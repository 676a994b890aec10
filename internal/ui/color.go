package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chriserin/gpc/internal/db"
)

var (
	outStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	noneStyle    = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	keywordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	tableStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// OutLine reports a written output file.
func OutLine(w io.Writer, path string) {
	fmt.Fprintln(w, outStyle.Render("out")+"   "+path)
}

// NoneLine reports an input that compiled to no documents.
func NoneLine(w io.Writer, path string) {
	fmt.Fprintln(w, noneStyle.Render("none")+"  "+path)
}

func SummaryLine(w io.Writer, inputs, outputs int) {
	fmt.Fprintf(w, "compiled %d files into %d outputs\n", inputs, outputs)
}

func RunRecorded(w io.Writer, id string) {
	fmt.Fprintln(w, noneStyle.Render("run")+"   "+id)
}

// RunRow prints one history line. idWidth pads short ids so columns line up.
func RunRow(w io.Writer, r db.Run, idWidth int) {
	passes := strings.Join(r.Passes, ",")
	if passes == "" {
		passes = "-"
	}
	fmt.Fprintf(w, "%-*s  %s  %d -> %d  %s\n",
		idWidth, r.ID,
		r.StartedAt.Local().Format("2006-01-02 15:04:05"),
		r.Inputs, r.Outputs,
		noneStyle.Render(passes))
}

func ShowHeader(w io.Writer, path string, documents int) {
	fmt.Fprintln(w, headerStyle.Render(path)+noneStyle.Render(fmt.Sprintf("  (%d documents)", documents)))
}

var keywords = []string{"Feature:", "Rule:", "Background:", "Scenario:", "Scenario Outline:", "Scenario Template:", "Examples:", "Scenarios:"}

// ShowGherkin prints formatted Gherkin with tags, headings and tables
// highlighted. Indentation is kept.
func ShowGherkin(w io.Writer, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		trimmed := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(trimmed)]
		fmt.Fprintln(w, indent+styleLine(trimmed))
	}
}

func styleLine(s string) string {
	switch {
	case strings.HasPrefix(s, "@"):
		return tagStyle.Render(s)
	case strings.HasPrefix(s, "|"):
		return tableStyle.Render(s)
	}
	for _, k := range keywords {
		if strings.HasPrefix(s, k) {
			return keywordStyle.Render(k) + s[len(k):]
		}
	}
	return s
}
