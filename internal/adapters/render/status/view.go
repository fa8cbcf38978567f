package status

import (
	"errors"
	"fmt"
	"time"

	"github.com/bnema/discord-autochat/internal/application"
	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	// SlowAfter is the fetch-self latency rendered fully faded.
	SlowAfter time.Duration
}

const defaultSlowAfter = 2 * time.Second

// Banner is printed by the run command before the scheduler starts.
func Banner(name, version string) string {
	s := newStyles()
	return lipgloss.JoinVertical(lipgloss.Left,
		s.banner.Render(name),
		s.tagline.Render("version "+version),
	)
}

func renderView(results []application.AccountHealth, opts RenderOptions, s styles) string {
	healthy := 0
	for _, r := range results {
		if r.Healthy() {
			healthy++
		}
	}

	lines := []string{
		s.title.Render("Discord Account Status"),
		s.header.Render(fmt.Sprintf("accounts: %d  healthy: %d", len(results), healthy)),
	}

	if len(results) == 0 {
		lines = append(lines, s.empty.Render("No accounts configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, result := range results {
		lines = append(lines, s.section.Render(renderAccount(result, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(result application.AccountHealth, opts RenderOptions, s styles) string {
	parts := []string{s.account.Render(accountTitle(result))}

	if result.Err != nil {
		parts = append(parts, s.warning.Render("login: "+describeError(result.Err)))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	parts = append(parts, latencyLine(result.Latency, opts, s))
	for _, ch := range result.Channels {
		label := s.detail.Render(fmt.Sprintf("channel %s:", ch.Channel))
		if ch.Err != nil {
			parts = append(parts, label+" "+s.warning.Render(describeError(ch.Err)))
			continue
		}
		parts = append(parts, label+" "+s.ok.Render("readable"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func accountTitle(result application.AccountHealth) string {
	redacted := result.Credential.Redacted()
	if result.Identity.ID == "" {
		return redacted
	}
	return fmt.Sprintf("%s (%s)", result.Identity.Tag(), redacted)
}

func latencyLine(latency time.Duration, opts RenderOptions, s styles) string {
	slowAfter := opts.SlowAfter
	if slowAfter <= 0 {
		slowAfter = defaultSlowAfter
	}

	// Fast responses render bright, slow ones fade.
	color := interpolateColor(slowAfter.Seconds()-latency.Seconds(), 0, slowAfter.Seconds())
	value := lipgloss.NewStyle().Foreground(color).Render(latency.Round(time.Millisecond).String())
	return s.detail.Render("login: ") + s.ok.Render("ok") + s.detail.Render(" in ") + value
}

func describeError(err error) string {
	var tagged *domain.Error
	if !errors.As(err, &tagged) {
		return err.Error()
	}

	switch {
	case tagged.Kind == domain.KindAuth && tagged.Status == 403:
		return "forbidden (status 403)"
	case tagged.Kind == domain.KindAuth:
		return "token rejected (status 401)"
	case tagged.Status == 429:
		return fmt.Sprintf("rate limited, retry after %s", tagged.RetryAfter)
	case tagged.Status != 0:
		return fmt.Sprintf("%s error (status %d)", tagged.Kind, tagged.Status)
	default:
		return err.Error()
	}
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp, 240 faded to 255 bright.
	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
