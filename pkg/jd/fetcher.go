// Package jd loads job descriptions from files, standard input or job posting URLs.
package jd

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

// Stdin is the input value that reads the job description from standard input.
const Stdin = "-"

const (
	fetchTimeout = 30 * time.Second
	userAgent    = "ats-scorer/1.0"
)

//nolint:gochecknoglobals // Extraction configuration
var (
	// noiseSelectors are removed before any text is read.
	noiseSelectors = []string{"script", "style", "noscript", "iframe", "nav", "header", "footer", "form"}

	// postingSelectors are tried in order; the first with text wins.
	postingSelectors = []string{
		"[itemprop=description]",
		".job-description",
		"#job-description",
		".description",
		"article",
		"main",
	}

	collapseSpace = regexp.MustCompile(`[ \t\r\f\v]+`)
	collapseLines = regexp.MustCompile(`\n\s*\n+`)
)

// Fetch retrieves a job description from a file, stdin or URL.
func Fetch(input string) (content string, err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	content, err = FetchWithContext(ctx, input)
	return content, err
}

// FetchWithContext retrieves a job description with context.
func FetchWithContext(ctx context.Context, input string) (content string, err error) {
	if input == Stdin {
		content, err = ReadFrom(os.Stdin)
		if err != nil {
			err = errors.Wrap(err, "failed to read JD from stdin")
		}
		return content, err
	}

	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		content, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch JD from URL: %s", input)
			return content, err
		}
		return content, err
	}

	content, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch JD from file: %s", input)
		return content, err
	}

	return content, err
}

// ReadFrom reads a plain text job description from r.
func ReadFrom(r io.Reader) (content string, err error) {
	var data []byte
	data, err = io.ReadAll(r)
	if err != nil {
		err = errors.Wrap(err, "failed to read input")
		return content, err
	}

	content = strings.TrimSpace(string(data))
	if content == "" {
		err = errors.New("input is empty")
		return content, err
	}

	return content, err
}

func fetchFromFile(path string) (content string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return content, err
	}

	content = string(data)
	if strings.TrimSpace(content) == "" {
		err = errors.New("file is empty")
		return content, err
	}

	return content, err
}

func fetchFromURL(ctx context.Context, urlStr string) (content string, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html, text/plain;q=0.9")

	client := &http.Client{
		Timeout: fetchTimeout,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	var bodyBytes []byte
	bodyBytes, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return content, err
	}

	if isPlainText(resp.Header.Get("Content-Type")) {
		content = strings.TrimSpace(string(bodyBytes))
	} else {
		content, err = ExtractText(string(bodyBytes))
		if err != nil {
			return content, err
		}
	}

	if content == "" {
		err = errors.New("fetched content is empty after processing")
		return content, err
	}

	return content, err
}

func isPlainText(contentType string) (plain bool) {
	plain = strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "text/plain")
	return plain
}

// ExtractText returns the readable job posting text of an HTML page. Page chrome is
// dropped, then the first posting container with text is used, falling back to the
// whole body. Block elements become separate lines.
func ExtractText(html string) (text string, err error) {
	var doc *goquery.Document
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		err = errors.Wrap(err, "failed to parse HTML")
		return text, err
	}

	doc.Find(strings.Join(noiseSelectors, ", ")).Remove()

	for _, selector := range postingSelectors {
		selection := doc.Find(selector).First()
		if selection.Length() == 0 {
			continue
		}
		text = blockText(selection)
		if text != "" {
			return text, err
		}
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		text = normalize(doc.Text())
		return text, err
	}

	text = blockText(body)
	return text, err
}

// blockText joins the text of paragraph-like descendants line by line, or the
// selection's own text when it has none.
func blockText(selection *goquery.Selection) (text string) {
	var lines []string
	selection.Find("h1, h2, h3, h4, h5, h6, p, li").Each(func(_ int, s *goquery.Selection) {
		line := strings.Join(strings.Fields(s.Text()), " ")
		if line != "" {
			lines = append(lines, line)
		}
	})

	if len(lines) > 0 {
		text = strings.Join(lines, "\n")
		return text
	}

	text = normalize(selection.Text())
	return text
}

func normalize(raw string) (text string) {
	text = collapseSpace.ReplaceAllString(raw, " ")
	text = collapseLines.ReplaceAllString(text, "\n")
	text = strings.TrimSpace(text)
	return text
}
