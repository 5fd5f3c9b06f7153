package downloader

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"memo-whisper/internal/app/util/files"
	"memo-whisper/internal/app/utils"
)

// Fetcher retrieves remote recordings. Direct audio URLs download as-is;
// HTML pages are scraped for their audio source first.
type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return NewFetcherWithClient(&http.Client{Timeout: 5 * time.Minute})
}

func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch stores the recording behind rawURL under dir and returns the local
// path.
func (f *Fetcher) Fetch(rawURL, dir string) (string, error) {
	u, err := parseHTTPURL(rawURL)
	if err != nil {
		return "", err
	}

	audioURL := u.String()
	if !isAudioURL(audioURL) {
		audioURL, err = f.scrapeAudioURL(u)
		if err != nil {
			return "", err
		}
	}
	return f.download(audioURL, dir)
}

// scrapeAudioURL loads an HTML page and extracts its audio source. A page
// that turns out to already be audio is returned unchanged.
func (f *Fetcher) scrapeAudioURL(page *url.URL) (string, error) {
	resp, err := f.client.Get(page.String())
	if err != nil {
		return "", fmt.Errorf("failed to fetch page %s: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page request failed with status %d for %s", resp.StatusCode, page)
	}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "audio/") {
		return page.String(), nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse page %s: %w", page, err)
	}
	return findAudioURL(doc, page)
}

// findAudioURL extracts the first audio source from an HTML document: the
// og:audio meta tag, then <audio> elements, then plain links.
func findAudioURL(doc *goquery.Document, base *url.URL) (string, error) {
	if content, ok := doc.Find(`meta[property="og:audio"]`).First().Attr("content"); ok && strings.TrimSpace(content) != "" {
		return resolveURL(base, content)
	}

	var found string
	doc.Find("audio").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if src, ok := s.Attr("src"); ok && strings.TrimSpace(src) != "" {
			found = src
			return false
		}
		if src, ok := s.Find("source[src]").First().Attr("src"); ok && strings.TrimSpace(src) != "" {
			found = src
			return false
		}
		return true
	})
	if found != "" {
		return resolveURL(base, found)
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if isAudioURL(href) {
			found = href
			return false
		}
		return true
	})
	if found != "" {
		return resolveURL(base, found)
	}

	return "", fmt.Errorf("no audio source found in page %s", base)
}

// download saves the audio behind rawURL into dir. An existing local file
// with the remote's reported size is kept as-is.
func (f *Fetcher) download(rawURL, dir string) (string, error) {
	u, err := parseHTTPURL(rawURL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	// Extension-bearing URLs have a stable local name, so a re-fetch can be
	// skipped when the size still matches.
	if isAudioURL(rawURL) {
		localPath := filepath.Join(dir, fileName(u, ""))
		if remoteSize := f.remoteSize(rawURL); remoteSize > 0 {
			if localSize, err := utils.GetFileSize(localPath); err == nil && localSize == remoteSize {
				log.Printf("local file %s matches remote size, skipping download", localPath)
				return localPath, nil
			}
		}
	}

	resp, err := f.client.Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed with status %d for %s", resp.StatusCode, rawURL)
	}

	localPath := filepath.Join(dir, fileName(u, resp.Header.Get("Content-Type")))
	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", localPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(localPath)
		return "", fmt.Errorf("failed to save %s: %w", localPath, err)
	}

	log.Printf("downloaded %s to %s", rawURL, localPath)
	return localPath, nil
}

// remoteSize asks the server for the content length. Zero means unknown.
func (f *Fetcher) remoteSize(rawURL string) int64 {
	resp, err := f.client.Head(rawURL)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()

	size, err := strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64)
	if err != nil {
		return 0
	}
	return size
}

func parseHTTPURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("invalid recording URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q in %q", u.Scheme, rawURL)
	}
	return u, nil
}

func resolveURL(base *url.URL, candidate string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(candidate))
	if err != nil {
		return "", fmt.Errorf("invalid audio URL %q: %w", candidate, err)
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", fmt.Errorf("unsupported audio URL scheme %q", resolved.Scheme)
	}
	return resolved.String(), nil
}

// isAudioURL reports whether the URL path ends in a recognized audio
// extension.
func isAudioURL(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	return files.IsAudioFile(u.Path)
}

// fileName derives the local file name from the URL path, falling back to
// the response content type for the extension.
func fileName(u *url.URL, contentType string) string {
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		base = "recording"
	}
	base = strings.ReplaceAll(base, string(filepath.Separator), "-")

	if files.IsAudioFile(base) {
		return base
	}
	return base + extensionForContentType(contentType)
}

func extensionForContentType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	switch strings.TrimSpace(strings.ToLower(contentType)) {
	case "audio/mp4", "audio/x-m4a", "audio/m4a":
		return ".m4a"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/ogg":
		return ".ogg"
	case "audio/flac", "audio/x-flac":
		return ".flac"
	case "audio/webm":
		return ".webm"
	default:
		return ".mp3"
	}
}
