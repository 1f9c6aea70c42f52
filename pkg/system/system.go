package system

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/exec"
	"regexp"
	"runtime"
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/sirupsen/logrus"
)

type ItfSystem interface {
	Shutdown() error
	Restart() error
	OpenURL(rawURL string) error
	OpenFile(path string) error
	DesktopSearch(query string) error
	PlayOnYouTube(ctx context.Context, query string) error
}

type system struct {
	log *logrus.Logger
}

func New(log *logrus.Logger) ItfSystem {
	return &system{log: log}
}

func (s *system) Shutdown() error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("shutdown", "/s", "/t", "1").Run()
	default:
		return exec.Command("shutdown", "-h", "now").Run()
	}
}

func (s *system) Restart() error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("shutdown", "/r", "/t", "1").Run()
	default:
		return exec.Command("shutdown", "-r", "now").Run()
	}
}

// OpenURL hands the URL to the OS default browser.
func (s *system) OpenURL(rawURL string) error {
	return openWithDefaultHandler(rawURL)
}

// OpenFile opens a local file with the OS default application.
func (s *system) OpenFile(path string) error {
	return openWithDefaultHandler(path)
}

func openWithDefaultHandler(target string) error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	case "darwin":
		return exec.Command("open", target).Start()
	default:
		return exec.Command("xdg-open", target).Start()
	}
}

// DesktopSearch drives the OS search UI: open it, type the query, hit enter.
func (s *system) DesktopSearch(query string) error {
	switch runtime.GOOS {
	case "darwin":
		if err := robotgo.KeyTap("space", "cmd"); err != nil {
			return err
		}
	default:
		if err := robotgo.KeyTap("cmd"); err != nil {
			return err
		}
	}
	time.Sleep(300 * time.Millisecond)

	robotgo.TypeStr(query)
	time.Sleep(400 * time.Millisecond)

	return robotgo.KeyTap("enter")
}

var videoIDPattern = regexp.MustCompile(`"videoId":"([^"]{11})"`)

// PlayOnYouTube opens the first search result for the query, falling back to
// the results page when no video ID can be scraped.
func (s *system) PlayOnYouTube(ctx context.Context, query string) error {
	searchURL := "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)

	videoURL, err := s.firstVideoURL(ctx, searchURL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"query": query,
			"error": err.Error(),
		}).Warn("Could not resolve first video, opening search results instead")
		return s.OpenURL(searchURL)
	}

	return s.OpenURL(videoURL)
}

func (s *system) firstVideoURL(ctx context.Context, searchURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("youtube search returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", err
	}

	match := videoIDPattern.FindSubmatch(body)
	if match == nil {
		return "", fmt.Errorf("no video id in search results")
	}

	return "https://www.youtube.com/watch?v=" + string(match[1]), nil
}
