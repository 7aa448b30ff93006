package cli

import (
	"fmt"
	"itinerary-planner-service/internal/domain"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")
	colorYellow = lipgloss.Color("#fabd2f")

	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleWarn   = lipgloss.NewStyle().Foreground(colorYellow)
	styleCell   = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
)

// RenderItinerary formats an itinerary for the terminal.
func RenderItinerary(it *domain.Itinerary) string {
	var b strings.Builder

	b.WriteString(styleHeader.Render("TRIP ITINERARY"))
	b.WriteString("\n")
	b.WriteString(summaryLine(it))
	b.WriteString("\n\n")

	if it.Empty() {
		b.WriteString(styleWarn.Render(it.Message))
		return b.String()
	}

	rows := make([][]string, 0, len(it.Entries))
	for _, e := range it.Entries {
		rows = append(rows, []string{
			strconv.Itoa(e.Order),
			e.Place.Name,
			e.Place.Category,
			visitTime(e.Place),
			fmt.Sprintf("%.0f min", e.VisitMinutes),
			fmt.Sprintf("%.2f km", e.DistanceFromPreviousKm),
			fmt.Sprintf("%.0f min", e.RemainingBudgetMinutes),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers("#", "Place", "Category", "Time", "Spend", "Distance", "Left").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.PaddingLeft(1).PaddingRight(1)
			}
			return styleCell
		})
	b.WriteString(t.String())

	if len(it.Rejected) > 0 {
		b.WriteString("\n")
		b.WriteString(styleDim.Render(fmt.Sprintf("%d place(s) did not fit the remaining time.", len(it.Rejected))))
	}
	if it.FailOpenFilter {
		b.WriteString("\n")
		b.WriteString(styleWarn.Render("Opening hours could not be checked; all places were considered."))
	}
	if it.SkippedLegs > 0 {
		b.WriteString("\n")
		b.WriteString(styleWarn.Render(fmt.Sprintf("%d leg(s) could not be routed and are missing from the map.", it.SkippedLegs)))
	}
	if it.MapsURL != "" {
		b.WriteString("\n")
		b.WriteString(styleDim.Render("Google Maps: ") + it.MapsURL)
	}

	return b.String()
}

func summaryLine(it *domain.Itinerary) string {
	tripDate := it.TripDate
	if tripDate == "" {
		tripDate = "Not provided"
	}
	return styleDim.Render(fmt.Sprintf(
		"Total Days: %d  Total Hour: %.2f  Trip Start Date: %s  Total Places: %d",
		it.Window.Days, it.Window.TotalHours, tripDate, len(it.Entries),
	))
}

func visitTime(p domain.Place) string {
	if p.VisitStart == "" || p.VisitEnd == "" {
		return "N/A"
	}
	return p.VisitStart + " - " + p.VisitEnd
}
