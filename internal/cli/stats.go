package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/sky-shelf/internal/app"
	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/models"
)

var weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func newStatsCommand(deps Deps) *cobra.Command {
	var page int
	var flip bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print statistics of the cached likes",
		Long: `Prints likes per weekday, hour and month, alt text coverage, likes of
followed accounts, embed totals and one page of the most liked authors.
The follow ratio needs a session and is skipped without one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := authenticate(ctx, deps); err != nil && !errors.Is(err, ErrLoginRequired) {
				return err
			}

			stats, err := deps.Services.StatsService.LikeStats(ctx)
			if errors.Is(err, service.ErrNoData) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", models.CollectionLikes, app.MsgNotIndexedCLI)
				return nil
			}
			if err != nil {
				return fmt.Errorf("like stats: %w", err)
			}

			writeStats(cmd.OutOrStdout(), stats, service.AuthorPage(stats.PerAuthor, page-1, flip))
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page of the author table")
	cmd.Flags().BoolVar(&flip, "flip", false, "list authors with the fewest likes first")

	return cmd
}

func writeStats(w io.Writer, stats models.LikeStats, authors models.Page[models.AuthorCount]) {
	fmt.Fprintf(w, "records: %d   unavailable: %d\n", stats.Records, stats.UnavailableCount)
	fmt.Fprintf(w, "alt text on image posts: %s\n", yesNo(stats.AltText))
	if stats.FromFollowed != nil {
		fmt.Fprintf(w, "from followed accounts: %s\n", yesNo(*stats.FromFollowed))
	}
	fmt.Fprintf(w, "embeds: none %d, image %d, video %d, post %d, external %d\n\n",
		stats.Embeds.None, stats.Embeds.Image, stats.Embeds.Video, stats.Embeds.Post, stats.Embeds.External)

	weekdayRow := make([]string, len(stats.PerWeekday))
	for i, n := range stats.PerWeekday {
		weekdayRow[i] = strconv.Itoa(n)
	}
	fmt.Fprintln(w, newTable(weekdays[:]...).Row(weekdayRow...).Render())

	hours := newTable("hour", "likes")
	for h, n := range stats.PerHour {
		if n > 0 {
			hours.Row(fmt.Sprintf("%02d", h), strconv.Itoa(n))
		}
	}
	fmt.Fprintln(w, hours.Render())

	if len(stats.PerMonth) > 0 {
		months := newTable("month", "likes")
		for _, m := range stats.PerMonth {
			months.Row(m.Label, strconv.Itoa(m.Count))
		}
		fmt.Fprintln(w, months.Render())
	}

	if authors.PageIndex == models.NoPages {
		return
	}
	top := newTable("author", "did", "likes")
	for _, a := range authors.Items {
		top.Row("@"+a.Profile.Handle, a.Profile.DID, strconv.Itoa(a.Count))
	}
	fmt.Fprintln(w, top.Render())
	fmt.Fprintf(w, "authors page %d/%d\n", authors.PageIndex+1, authors.PageCount)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func yesNo(v models.YesNo) string {
	total := v.Yes + v.No
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%d of %d (%d%%)", v.Yes, total, v.Yes*100/total)
}
