// Package pdf converts one fully-rendered HTML document into a PDF byte
// stream using a headless Chromium instance driven by rod.
package pdf

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Renderer turns a rendered HTML document into PDF bytes. The baseURL is
// used to resolve relative asset links in the document. Implementations are
// invoked at most once per export request.
type Renderer interface {
	Render(ctx context.Context, html, baseURL string) ([]byte, error)
}

// ChromeRenderer renders via a headless Chromium launched per call and torn
// down when the render completes, so no browser process outlives a request.
type ChromeRenderer struct {
	bin string
}

// NewChromeRenderer creates a renderer. bin may be empty, in which case the
// launcher resolves (and if needed downloads) a managed Chromium build.
func NewChromeRenderer(bin string) *ChromeRenderer {
	return &ChromeRenderer{bin: bin}
}

func (r *ChromeRenderer) Render(ctx context.Context, html, baseURL string) ([]byte, error) {
	launch := launcher.New().Headless(true)
	if r.bin != "" {
		launch = launch.Bin(r.bin)
	}

	controlURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	err = browser.Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	err = page.SetDocumentContent(withBase(html, baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to set document content: %w", err)
	}

	err = page.WaitLoad()
	if err != nil {
		return nil, fmt.Errorf("failed to wait for document load: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to print to pdf: %w", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf stream: %w", err)
	}

	return data, nil
}

// withBase injects a <base> element so relative asset links resolve against
// baseURL. Documents that already declare a base are left alone.
func withBase(html, baseURL string) string {
	if baseURL == "" || strings.Contains(html, "<base ") {
		return html
	}
	tag := fmt.Sprintf(`<base href="%s">`, baseURL)
	if i := strings.Index(html, "<head>"); i >= 0 {
		return html[:i+len("<head>")] + tag + html[i+len("<head>"):]
	}
	return tag + html
}
