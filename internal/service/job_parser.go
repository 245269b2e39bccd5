package service

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

const (
	maxJobDescriptionChars = 5000
	jobFetchTimeout        = 10 * time.Second
	fetchUserAgent         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	unknownJobTitle        = "Unknown Position"
)

// ParsedJob is the result of ingesting a job posting.
type ParsedJob struct {
	JobTitle       string
	CompanyName    *string
	JobDescription string
	SourceURL      string
}

// JobParserService extracts job context from external sources. Failures are
// surfaced to the caller; they never gate question generation.
type JobParserService interface {
	ParseFromURL(url string) (*ParsedJob, error)
	ParseFromPDF(content []byte) (string, error)
}

type jobParserService struct {
	client *http.Client
}

func NewJobParserService() JobParserService {
	return &jobParserService{
		client: &http.Client{Timeout: jobFetchTimeout},
	}
}

func (s *jobParserService) ParseFromURL(url string) (*ParsedJob, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job posting from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch job posting (status %d) from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read job posting body from %s: %w", url, err)
	}

	parsed, err := extractJobPosting(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse job posting HTML from %s: %w", url, err)
	}
	parsed.SourceURL = url

	log.Info().Str("url", url).Str("jobTitle", parsed.JobTitle).Msg("Parsed job posting from URL")
	return parsed, nil
}

// ParseFromPDF returns the concatenated plain text of every page.
func (s *jobParserService) ParseFromPDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var b strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from PDF page %d: %w", pageNum, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	extracted := strings.TrimSpace(b.String())
	if extracted == "" {
		return "", fmt.Errorf("PDF contained no extractable text")
	}
	return extracted, nil
}

var titleSuffixPattern = regexp.MustCompile(`(?i)\s*[-|]\s*(Jobs?|Careers?|Indeed|LinkedIn).*$`)

// extractJobPosting walks the document once, collecting visible text (script
// and style subtrees dropped), the page title, and og: metadata.
func extractJobPosting(body []byte) (*ParsedJob, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var textParts []string
	var pageTitle, ogTitle, ogSiteName, firstHeading string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			case "meta":
				property, content := attr(n, "property"), attr(n, "content")
				if property == "og:title" {
					ogTitle = strings.TrimSpace(content)
				}
				if property == "og:site_name" {
					ogSiteName = strings.TrimSpace(content)
				}
			case "title":
				if n.FirstChild != nil && pageTitle == "" {
					pageTitle = strings.TrimSpace(n.FirstChild.Data)
				}
			case "h1", "h2":
				if firstHeading == "" {
					firstHeading = strings.TrimSpace(nodeText(n))
				}
			}
		}
		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				textParts = append(textParts, trimmed)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	jobTitle := unknownJobTitle
	switch {
	case ogTitle != "":
		jobTitle = ogTitle
	case firstHeading != "":
		jobTitle = firstHeading
	case pageTitle != "":
		jobTitle = strings.TrimSpace(titleSuffixPattern.ReplaceAllString(pageTitle, ""))
	}
	if jobTitle == "" {
		jobTitle = unknownJobTitle
	}

	var companyName *string
	if ogSiteName != "" {
		companyName = &ogSiteName
	}

	return &ParsedJob{
		JobTitle:       jobTitle,
		CompanyName:    companyName,
		JobDescription: truncateRunes(strings.Join(textParts, " "), maxJobDescriptionChars),
	}, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}
