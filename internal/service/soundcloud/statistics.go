package soundcloud

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/soundcloud-grabber/internal/logger"
)

const (
	// summarySeparator frames the summary blocks.
	summarySeparator = "═══════════════════════════════════════════════════════════════"

	// retryCommandName is the executable name shown in the retry hint.
	retryCommandName = "soundcloud-grabber"

	// minReportedDuration hides duration and speed for runs that ended immediately.
	minReportedDuration = 100 * time.Millisecond
)

// summaryLine is one rendered line of the download summary.
type summaryLine struct {
	level zapcore.Level
	text  string
}

// summaryBuilder accumulates summary lines before they are logged.
type summaryBuilder struct {
	lines []summaryLine
}

func (b *summaryBuilder) info(format string, args ...any) {
	b.add(zapcore.InfoLevel, format, args...)
}

func (b *summaryBuilder) warn(format string, args ...any) {
	b.add(zapcore.WarnLevel, format, args...)
}

func (b *summaryBuilder) error(format string, args ...any) {
	b.add(zapcore.ErrorLevel, format, args...)
}

func (b *summaryBuilder) blank() {
	b.lines = append(b.lines, summaryLine{level: zapcore.InfoLevel})
}

func (b *summaryBuilder) add(level zapcore.Level, format string, args ...any) {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}

	b.lines = append(b.lines, summaryLine{level: level, text: text})
}

// formatDuration renders d as "250ms", "42s", "3m 5s" or "2h 1m 9s".
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	total := int64(d / time.Second)
	h, m, sec := total/3600, total/60%60, total%60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, sec)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, sec)
	default:
		return fmt.Sprintf("%ds", sec)
	}
}

func (s *ServiceImpl) incrementTrackDownloaded(bytes int64) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.TotalTracksProcessed++
	s.stats.TracksDownloaded++
	s.stats.TotalBytesDownloaded += bytes
}

func (s *ServiceImpl) incrementTrackSkipped(reason SkipReason) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.TotalTracksProcessed++
	s.stats.TracksSkipped++

	if reason == SkipReasonExists {
		s.stats.TracksSkippedExists++
	} else if reason == SkipReasonUnavailable {
		s.stats.TracksSkippedUnavailable++
	}
}

func (s *ServiceImpl) incrementTrackFailed() {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.TotalTracksProcessed++
	s.stats.TracksFailed++
}

// Statistics returns a copy of the current session statistics.
func (s *ServiceImpl) Statistics() DownloadStatistics {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	stats := *s.stats
	stats.Errors = append([]DownloadError(nil), s.stats.Errors...)

	return stats
}

// PrintDownloadSummary logs the session summary: counters, transfer figures,
// grouped errors and a command retrying the failed URLs.
// An interrupted ctx changes the header and the closing message.
func (s *ServiceImpl) PrintDownloadSummary(ctx context.Context) {
	stats := s.Statistics()

	// Nothing to report, e.g. an empty URL list.
	if stats.TotalTracksProcessed == 0 && len(stats.Errors) == 0 {
		return
	}

	for _, line := range buildSummary(&stats, ctx.Err() != nil) {
		switch line.level {
		case zapcore.ErrorLevel:
			logger.Error(ctx, line.text)
		case zapcore.WarnLevel:
			logger.Warn(ctx, line.text)
		default:
			logger.Info(ctx, line.text)
		}
	}
}

// buildSummary renders stats into summary lines.
func buildSummary(stats *DownloadStatistics, interrupted bool) []summaryLine {
	b := new(summaryBuilder)

	title := "                     DOWNLOAD SUMMARY"
	if interrupted {
		title = "           DOWNLOAD SUMMARY (Interrupted)"
	}

	b.blank()
	b.info(summarySeparator)
	b.info("%s", title)
	b.info(summarySeparator)

	writeTrackCounters(b, stats)
	writeTransfer(b, stats)
	b.info(summarySeparator)
	writeErrors(b, stats.Errors)
	writeClosingMessage(b, stats, interrupted)

	return b.lines
}

func writeTrackCounters(b *summaryBuilder, stats *DownloadStatistics) {
	b.info("Tracks:           %d total processed", stats.TotalTracksProcessed)

	counters := []struct {
		label string
		value int64
	}{
		{label: "  Downloaded:      %d", value: stats.TracksDownloaded},
		{label: "  Skipped:         %d total", value: stats.TracksSkipped},
		{label: "    Already Have:  %d", value: stats.TracksSkippedExists},
		{label: "    Unavailable:   %d", value: stats.TracksSkippedUnavailable},
		{label: "  Failed:          %d", value: stats.TracksFailed},
	}

	for _, c := range counters {
		if c.value > 0 {
			b.info(c.label, c.value)
		}
	}

	if stats.TotalTracksProcessed > 0 {
		ok := stats.TracksDownloaded + stats.TracksSkipped
		b.info("  Success Rate:    %.1f%%", float64(ok)*100/float64(stats.TotalTracksProcessed))
	}
}

func writeTransfer(b *summaryBuilder, stats *DownloadStatistics) {
	//nolint:gosec // Byte counters never go negative.
	totalBytes := uint64(stats.TotalBytesDownloaded)
	if totalBytes > 0 {
		b.blank()
		b.info("Data Downloaded:  %s", humanize.Bytes(totalBytes))
	}

	if stats.StartTime.IsZero() || stats.EndTime.IsZero() {
		return
	}

	elapsed := stats.EndTime.Sub(stats.StartTime)
	if elapsed <= minReportedDuration {
		return
	}

	b.info("Duration:         %s", formatDuration(elapsed))

	if totalBytes > 0 {
		b.info("Average Speed:    %s/s", humanize.Bytes(uint64(float64(totalBytes)/elapsed.Seconds())))
	}
}

func writeErrors(b *summaryBuilder, errs []DownloadError) {
	if len(errs) == 0 {
		return
	}

	b.blank()
	b.error("ERRORS ENCOUNTERED: %d", len(errs))

	trackErrors, otherErrors := groupErrors(errs)
	writeCollectionErrors(b, otherErrors)
	writeTrackErrors(b, trackErrors)

	b.blank()
	b.info(summarySeparator)

	if command := buildRetryCommand(errs); command != "" {
		b.blank()
		b.info("To retry only failed downloads, run:")
		b.blank()
		b.info("  %s", command)
	}
}

// groupErrors separates track errors from URL, playlist and log errors.
func groupErrors(errs []DownloadError) (trackErrors, otherErrors []DownloadError) {
	for _, e := range errs {
		if e.Category == DownloadCategoryTrack {
			trackErrors = append(trackErrors, e)

			continue
		}

		otherErrors = append(otherErrors, e)
	}

	return trackErrors, otherErrors
}

func writeCollectionErrors(b *summaryBuilder, errs []DownloadError) {
	if len(errs) == 0 {
		return
	}

	b.blank()
	b.error("COLLECTION ERRORS:")

	for i, e := range errs {
		b.blank()
		b.error("  [%d] %s: %s", i+1, e.Category, e.ItemTitle)

		if e.ItemURL != "" {
			b.error("      URL: %s", e.ItemURL)
		}

		b.error("      Phase: %s", e.Phase)
		b.error("      Error: %s", e.ErrorMessage)
	}
}

// writeTrackErrors lists track errors grouped by playlist, groups in order of first appearance.
func writeTrackErrors(b *summaryBuilder, errs []DownloadError) {
	if len(errs) == 0 {
		return
	}

	b.blank()
	b.error("TRACK ERRORS:")

	var (
		order  []string
		groups = make(map[string][]DownloadError)
	)

	for _, e := range errs {
		if _, ok := groups[e.ParentID]; !ok {
			order = append(order, e.ParentID)
		}

		groups[e.ParentID] = append(groups[e.ParentID], e)
	}

	for _, parentID := range order {
		group := groups[parentID]

		b.blank()

		if parent := group[0]; parent.ParentTitle != "" {
			b.error("  From %s: %s", parent.ParentCategory, parent.ParentTitle)
		} else {
			b.error("  Single tracks:")
		}

		for i, e := range group {
			b.blank()
			b.error("    [%d] %s", i+1, e.ItemTitle)

			if e.ItemID != "" {
				b.error("        Track ID: %s", e.ItemID)
			}

			b.error("        Phase: %s", e.Phase)
			b.error("        Error: %s", e.ErrorMessage)
		}
	}
}

// buildRetryCommand returns a command line retrying every failed page URL, or "" when there is none.
// Playlist tracks are retried through their playlist, unparsable URLs are left out.
func buildRetryCommand(errs []DownloadError) string {
	var (
		seen = make(map[string]struct{})
		urls []string
	)

	for _, e := range errs {
		if e.Category == DownloadCategoryUnknown {
			continue
		}

		retryURL := e.ItemURL
		if retryURL == "" {
			retryURL = e.ParentURL
		}

		if retryURL == "" {
			continue
		}

		if _, ok := seen[retryURL]; ok {
			continue
		}

		seen[retryURL] = struct{}{}

		urls = append(urls, retryURL)
	}

	if len(urls) == 0 {
		return ""
	}

	return retryCommandName + " " + strings.Join(urls, " ")
}

func writeClosingMessage(b *summaryBuilder, stats *DownloadStatistics, interrupted bool) {
	switch {
	case interrupted:
		b.blank()
		b.warn("Download interrupted by user (CTRL+C).")

		if stats.TracksDownloaded > 0 {
			b.info("Successfully downloaded %d track(s) before interruption.", stats.TracksDownloaded)
		}
	case len(stats.Errors) > 0:
		b.blank()
		b.warn("%d error(s) occurred during download. See detailed error log above.", len(stats.Errors))
	case stats.TracksDownloaded > 0:
		b.blank()
		b.info("All downloads completed successfully!")
	case stats.TracksSkippedExists > 0:
		b.blank()
		b.info("All tracks were downloaded before.")
	}
}
