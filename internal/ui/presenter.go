package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/temirov/gitacp/internal/classify"
	"github.com/temirov/gitacp/internal/utils"
)

const (
	addedSectionHeadingConstant    = "Added:"
	excludedSectionHeadingConstant = "Excluded:"
	noChangesMessageConstant       = "Nothing to stage."
	entryLineTemplateConstant      = "  %s  [%s]\n"
	sectionHeadingTemplateConstant = "%s\n"
	actionLineTemplateConstant     = "%s\n"

	addedColorConstant    = "2"
	excludedColorConstant = "1"
	codeColorConstant     = "8"
)

// PlanPresenter renders the classification partition and planned actions for
// CLI users. Structured telemetry stays on the logger; the presenter owns the
// human-facing stream.
type PlanPresenter struct {
	writer        io.Writer
	headingStyle  lipgloss.Style
	addedStyle    lipgloss.Style
	excludedStyle lipgloss.Style
	codeStyle     lipgloss.Style
}

// NewPlanPresenter constructs a PlanPresenter writing to the provided stream.
func NewPlanPresenter(writer io.Writer) *PlanPresenter {
	return &PlanPresenter{
		writer:        utils.NewFlushingWriter(writer),
		headingStyle:  lipgloss.NewStyle().Bold(true),
		addedStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color(addedColorConstant)),
		excludedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(excludedColorConstant)),
		codeStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color(codeColorConstant)),
	}
}

// ShowPartition renders the added and excluded sequences with display paths
// padded to a shared column width. Empty sections are omitted.
func (presenter *PlanPresenter) ShowPartition(partition classify.Result) {
	if presenter == nil || presenter.writer == nil {
		return
	}

	if len(partition.Added) > 0 {
		fmt.Fprintf(presenter.writer, sectionHeadingTemplateConstant, presenter.headingStyle.Render(addedSectionHeadingConstant))
		presenter.renderEntries(partition.Added, partition.MaxDisplayWidth, presenter.addedStyle)
	}

	if len(partition.Excluded) > 0 {
		fmt.Fprintf(presenter.writer, sectionHeadingTemplateConstant, presenter.headingStyle.Render(excludedSectionHeadingConstant))
		presenter.renderEntries(partition.Excluded, partition.MaxDisplayWidth, presenter.excludedStyle)
	}
}

// ShowNoChanges reports that classification produced nothing to stage.
func (presenter *PlanPresenter) ShowNoChanges() {
	if presenter == nil || presenter.writer == nil {
		return
	}
	fmt.Fprintf(presenter.writer, actionLineTemplateConstant, noChangesMessageConstant)
}

// ShowPlannedAction renders one planned action line during dry runs.
func (presenter *PlanPresenter) ShowPlannedAction(description string) {
	if presenter == nil || presenter.writer == nil {
		return
	}
	fmt.Fprintf(presenter.writer, actionLineTemplateConstant, description)
}

func (presenter *PlanPresenter) renderEntries(entries []classify.Entry, columnWidth int, pathStyle lipgloss.Style) {
	for _, entry := range entries {
		paddedPath := runewidth.FillRight(entry.Display.String(), columnWidth)
		fmt.Fprintf(presenter.writer, entryLineTemplateConstant, pathStyle.Render(paddedPath), presenter.codeStyle.Render(string(entry.Code)))
	}
}
