package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const jobPostingHTML = `<html>
<head>
<title>Backend Engineer - Careers at Acme | Indeed</title>
<meta property="og:title" content="Backend Engineer">
<meta property="og:site_name" content="Acme Corp">
<script>var tracking = "ignore me";</script>
<style>.hidden { display: none; }</style>
</head>
<body>
<h1>Backend Engineer</h1>
<p>We are looking for an engineer to build and operate Go services.</p>
<script>console.log("also ignored");</script>
</body>
</html>`

func TestExtractJobPosting_UsesOpenGraphMetadata(t *testing.T) {
	parsed, err := extractJobPosting([]byte(jobPostingHTML))
	if err != nil {
		t.Fatalf("extractJobPosting failed: %v", err)
	}

	if parsed.JobTitle != "Backend Engineer" {
		t.Errorf("expected og:title as job title, got %q", parsed.JobTitle)
	}
	if parsed.CompanyName == nil || *parsed.CompanyName != "Acme Corp" {
		t.Errorf("expected og:site_name as company, got %v", parsed.CompanyName)
	}
	if !strings.Contains(parsed.JobDescription, "build and operate Go services") {
		t.Errorf("expected body text in description, got %q", parsed.JobDescription)
	}
	if strings.Contains(parsed.JobDescription, "ignore me") || strings.Contains(parsed.JobDescription, "also ignored") {
		t.Errorf("script content leaked into description: %q", parsed.JobDescription)
	}
	if strings.Contains(parsed.JobDescription, "display: none") {
		t.Errorf("style content leaked into description: %q", parsed.JobDescription)
	}
}

func TestExtractJobPosting_FallsBackToHeadingThenTitle(t *testing.T) {
	headingOnly := `<html><body><h1>Site Reliability Engineer</h1><p>On call.</p></body></html>`
	parsed, err := extractJobPosting([]byte(headingOnly))
	if err != nil {
		t.Fatalf("extractJobPosting failed: %v", err)
	}
	if parsed.JobTitle != "Site Reliability Engineer" {
		t.Errorf("expected heading as job title, got %q", parsed.JobTitle)
	}

	titleOnly := `<html><head><title>Data Engineer - Jobs at Example</title></head><body><p>Pipelines.</p></body></html>`
	parsed, err = extractJobPosting([]byte(titleOnly))
	if err != nil {
		t.Fatalf("extractJobPosting failed: %v", err)
	}
	if parsed.JobTitle != "Data Engineer" {
		t.Errorf("expected stripped page title as job title, got %q", parsed.JobTitle)
	}
}

func TestExtractJobPosting_EmptyPageGetsUnknownTitle(t *testing.T) {
	parsed, err := extractJobPosting([]byte(`<html><body></body></html>`))
	if err != nil {
		t.Fatalf("extractJobPosting failed: %v", err)
	}
	if parsed.JobTitle != unknownJobTitle {
		t.Errorf("expected %q, got %q", unknownJobTitle, parsed.JobTitle)
	}
	if parsed.CompanyName != nil {
		t.Errorf("expected nil company, got %q", *parsed.CompanyName)
	}
}

func TestExtractJobPosting_TruncatesLongDescription(t *testing.T) {
	long := `<html><body><p>` + strings.Repeat("word ", 2000) + `</p></body></html>`
	parsed, err := extractJobPosting([]byte(long))
	if err != nil {
		t.Fatalf("extractJobPosting failed: %v", err)
	}
	if got := len([]rune(parsed.JobDescription)); got > maxJobDescriptionChars {
		t.Errorf("expected description capped at %d chars, got %d", maxJobDescriptionChars, got)
	}
}

func TestParseFromURL_FetchesAndParses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != fetchUserAgent {
			t.Errorf("unexpected User-Agent: %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(jobPostingHTML))
	}))
	defer server.Close()

	parsed, err := NewJobParserService().ParseFromURL(server.URL)
	if err != nil {
		t.Fatalf("ParseFromURL failed: %v", err)
	}
	if parsed.JobTitle != "Backend Engineer" {
		t.Errorf("expected parsed job title, got %q", parsed.JobTitle)
	}
	if parsed.SourceURL != server.URL {
		t.Errorf("expected source URL %q, got %q", server.URL, parsed.SourceURL)
	}
}

func TestParseFromURL_NonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := NewJobParserService().ParseFromURL(server.URL); err == nil {
		t.Error("expected error for non-200 response")
	}
}
