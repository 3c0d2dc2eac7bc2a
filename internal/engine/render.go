package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// OutputFormat selects how results are written by the render functions.
type OutputFormat string

// Supported output formats.
const (
	OutputTable  OutputFormat = "table"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
)

// ParseOutputFormat validates a user supplied output format.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputTable, OutputJSON, OutputNDJSON:
		return f, nil
	case "":
		return OutputTable, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// maxTweetPreview is the number of characters of a tweet shown in the header.
const maxTweetPreview = 30

// degradedNotice is printed when fixture data stands in for live data.
const degradedNotice = "NOTE: live data unavailable, showing sample data"

// numberPrinter formats integers with locale grouping (25,431).
func numberPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// FormatCount formats n with thousands separators.
func FormatCount(n int64) string {
	return numberPrinter().Sprintf("%d", n)
}

// RenderLeaderboard writes the leaderboard view in the requested format.
func RenderLeaderboard(w io.Writer, format OutputFormat, view LeaderboardView) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case OutputNDJSON:
		enc := json.NewEncoder(w)
		for _, inf := range view.Influencers {
			if err := enc.Encode(inf); err != nil {
				return err
			}
		}
		return nil
	case OutputTable:
		return renderLeaderboardTable(w, view)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderLeaderboardTable(w io.Writer, view LeaderboardView) error {
	p := numberPrinter()
	if view.Degraded {
		fmt.Fprintln(w, degradedNotice)
	}
	p.Fprintf(w, "Active Influencers: %d    Claims Verified: %d    Average Trust Score: %.1f%%\n",
		view.Stats.ActiveInfluencers, view.Stats.ClaimsVerified, view.Stats.AverageTrustScore)
	fmt.Fprintf(w, "Category: %s    Sort: %s\n\n", view.Category, view.Order.Label())

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	fmt.Fprintln(tw, "RANK\tINFLUENCER\tCATEGORY\tTRUST SCORE\tTREND\tFOLLOWERS\tVERIFIED CLAIMS")
	for _, inf := range view.Influencers {
		fmt.Fprintf(tw, "#%d\t%s\t%s\t%d%%\t%s\t%s\t%s\n",
			inf.Rank, inf.Name, inf.Category, inf.TrustScore,
			inf.Trend.Arrow(), inf.Followers, FormatCount(int64(inf.Claims)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(view.Influencers) == 0 {
		fmt.Fprintln(w, "No influencers match the selected category.")
	}
	return nil
}

// RenderInfluencer writes the detail view in the requested format.
func RenderInfluencer(w io.Writer, format OutputFormat, d InfluencerDetail) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case OutputNDJSON:
		enc := json.NewEncoder(w)
		for _, c := range d.Claims {
			if err := enc.Encode(c); err != nil {
				return err
			}
		}
		return nil
	case OutputTable:
		return renderInfluencerTable(w, d)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderInfluencerTable(w io.Writer, d InfluencerDetail) error {
	if d.Degraded {
		fmt.Fprintln(w, degradedNotice)
	}
	fmt.Fprintln(w, d.Username)
	if previews := TweetPreviews(d.Tweets, 3); len(previews) > 0 {
		fmt.Fprintln(w, strings.Join(previews, " • "))
	}
	fmt.Fprintln(w)

	followers := "-"
	if d.Followers > 0 {
		followers = FormatCount(d.Followers)
	}
	fmt.Fprintf(w, "Trust Score: %s (based on %d claims)    Yearly Revenue: $%s    Products: %d    Followers: %s\n\n",
		d.AggregateString, d.TotalClaims, d.Stats.YearlyRevenue, d.Stats.ProductsCount, followers)

	fmt.Fprintf(w, "Showing %d claims\n", len(d.Claims))
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTRUST SCORE\tCLAIM")
	for _, c := range d.Claims {
		fmt.Fprintf(tw, "%d\t%s\t%d%%\t%s\n", c.ID, strings.ToLower(string(c.Status)), c.TrustScore, c.Title)
	}
	return tw.Flush()
}

// TweetPreviews returns up to n tweets truncated for a one-line header.
func TweetPreviews(tweets []string, n int) []string {
	if len(tweets) < n {
		n = len(tweets)
	}
	out := make([]string, 0, n)
	for _, t := range tweets[:n] {
		runes := []rune(t)
		if len(runes) > maxTweetPreview {
			t = string(runes[:maxTweetPreview])
		}
		out = append(out, t+"...")
	}
	return out
}
