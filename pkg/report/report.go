// Package report renders scoring results for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikogura/ats-scorer/pkg/scorer"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Supported report formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

const barWidth = 20

// Formats lists the formats Render accepts.
func Formats() (formats []string) {
	formats = []string{FormatText, FormatMarkdown, FormatJSON}
	return formats
}

// Extension returns the file extension conventionally used for a format.
func Extension(format string) (ext string) {
	switch format {
	case FormatMarkdown:
		ext = ".md"
	case FormatJSON:
		ext = ".json"
	default:
		ext = ".txt"
	}
	return ext
}

// Render formats a result. An empty format renders text.
func Render(result scorer.Result, format string) (content string, err error) {
	switch format {
	case "", FormatText:
		content = renderText(result)
	case FormatMarkdown:
		content = renderMarkdown(result)
	case FormatJSON:
		var data []byte
		data, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			err = errors.Wrap(err, "failed to marshal result")
			return content, err
		}
		content = string(data) + "\n"
	default:
		err = errors.Errorf("unsupported report format: %s (want one of %s)", format, strings.Join(Formats(), ", "))
	}

	return content, err
}

func renderText(result scorer.Result) (content string) {
	var sb strings.Builder
	titleCaser := cases.Title(language.English)

	fmt.Fprintf(&sb, "ATS Score: %d/100 (%s)\n", result.CompositeScore, titleCaser.String(result.Rating))
	fmt.Fprintf(&sb, "%s\n\n", result.Verdict())

	sb.WriteString("Category Breakdown:\n")
	for _, c := range result.Categories {
		fmt.Fprintf(&sb, "  %-24s %3d/100  %s  (weight %d%%)\n", c.Name, c.Score, bar(c.Score), c.Weight)
	}

	if len(result.Issues) > 0 {
		sb.WriteString("\nIssues:\n")
		for _, issue := range result.Issues {
			fmt.Fprintf(&sb, "  - %s\n", issue)
		}
	}

	if len(result.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for i, suggestion := range result.Suggestions {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, suggestion)
		}
	}

	content = sb.String()
	return content
}

func renderMarkdown(result scorer.Result) (content string) {
	var sb strings.Builder
	titleCaser := cases.Title(language.English)

	sb.WriteString("# ATS Score Report\n\n")
	fmt.Fprintf(&sb, "**Overall score:** %d/100 (%s)\n\n", result.CompositeScore, titleCaser.String(result.Rating))
	fmt.Fprintf(&sb, "%s\n\n", result.Verdict())

	sb.WriteString("## Category Breakdown\n\n")
	sb.WriteString("| Category | Score | Weight |\n")
	sb.WriteString("|---|---:|---:|\n")
	for _, c := range result.Categories {
		fmt.Fprintf(&sb, "| %s | %d | %d%% |\n", c.Name, c.Score, c.Weight)
	}

	if len(result.Issues) > 0 {
		sb.WriteString("\n## Issues\n\n")
		for _, issue := range result.Issues {
			fmt.Fprintf(&sb, "- %s\n", issue)
		}
	}

	if len(result.Suggestions) > 0 {
		sb.WriteString("\n## Suggestions\n\n")
		for i, suggestion := range result.Suggestions {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, suggestion)
		}
	}

	content = sb.String()
	return content
}

// bar draws a fixed-width progress bar for a 0-100 score.
func bar(score int) (drawn string) {
	filled := score * barWidth / 100
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	drawn = "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
	return drawn
}

// Write writes report content to a file, creating parent directories.
func Write(content, outputPath string) (err error) {
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = os.WriteFile(outputPath, []byte(content), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write report file: %s", outputPath)
		return err
	}

	return err
}
