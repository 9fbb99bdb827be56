package cmd

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/xvierd/pomo-cli/internal/domain"
)

// statsCmd renders the weekly dashboard.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the weekly dashboard",
	Long:  `Display a bar chart of focus minutes per day over the trailing week, with totals, best day, and streak.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		days := app.engine.WeeklyData()
		report := domain.NewWeeklyReport(days)
		streak := app.engine.CurrentStreak()

		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(app.config.Theme.ColorFocus))
		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(app.config.Theme.ColorHelp))
		valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(app.config.Theme.ColorBreak))

		fmt.Println()
		fmt.Println(titleStyle.Render("🍅 Last 7 days"))
		fmt.Println()

		if report.TotalSessions == 0 {
			fmt.Println(dimStyle.Render("No focus sessions recorded in the last 7 days."))
			return nil
		}

		fmt.Println(renderWeekChart(days, app.config.Theme.ColorFocus))
		fmt.Println()

		fmt.Printf("%s %s\n",
			dimStyle.Render("Sessions:"),
			valueStyle.Render(fmt.Sprintf("%d", report.TotalSessions)))
		fmt.Printf("%s %s\n",
			dimStyle.Render("Focus time:"),
			valueStyle.Render(formatMinutes(report.TotalMinutes)))
		if report.BestDay != nil {
			fmt.Printf("%s %s\n",
				dimStyle.Render("Best day:"),
				valueStyle.Render(fmt.Sprintf("%s (%s)", report.BestDay.Weekday(), formatMinutes(report.BestDay.Minutes))))
		}
		fmt.Printf("%s %s\n",
			dimStyle.Render("Daily average:"),
			valueStyle.Render(formatMinutes(report.DailyAverage)))
		fmt.Printf("%s %s\n",
			dimStyle.Render("Streak:"),
			valueStyle.Render(fmt.Sprintf("%d days", streak)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// renderWeekChart builds a bar chart with one bar per calendar day in the
// trailing window, zero-height for days without sessions.
func renderWeekChart(days []domain.DailyStat, color string) string {
	byDate := make(map[string]domain.DailyStat, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	now := time.Now()

	var bars []barchart.BarData
	for i := domain.LedgerDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		stat := byDate[day.Format(domain.DateLayout)]
		bars = append(bars, barchart.BarData{
			Label: day.Format("Mon"),
			Values: []barchart.BarValue{
				{Name: "minutes", Value: stat.Minutes, Style: barStyle},
			},
		})
	}

	chart := barchart.New(46, 10)
	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}

func formatMinutes(minutes float64) string {
	total := int(minutes + 0.5)
	if total >= 60 {
		return fmt.Sprintf("%dh %dm", total/60, total%60)
	}
	return fmt.Sprintf("%dm", total)
}
