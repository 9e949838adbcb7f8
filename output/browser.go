package output

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/browser"
)

const (
	DefaultImageServiceURL = "https://api.qrserver.com/v1/create-qr-code/"
	DefaultImageSize       = "150x150"
)

// ImageURL points the public QR image service at payload. Spaces become %20,
// not "+", so a strict percent-decoder gets the payload back unchanged.
func ImageURL(serviceURL, size, payload string) string {
	return fmt.Sprintf("%s?size=%s&data=%s", serviceURL, escape(size), escape(payload))
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// BrowserOpener shows payloads through an external QR image service opened
// in the default browser. It needs network access at runtime.
type BrowserOpener struct {
	serviceURL string
	size       string
	out        io.Writer
	logger     *log.Logger
	openURL    func(string) error
}

func NewBrowserOpener(serviceURL, size string, out io.Writer, logger *log.Logger) *BrowserOpener {
	if serviceURL == "" {
		serviceURL = DefaultImageServiceURL
	}
	if size == "" {
		size = DefaultImageSize
	}
	return &BrowserOpener{
		serviceURL: serviceURL,
		size:       size,
		out:        out,
		logger:     logger,
		openURL:    browser.OpenURL,
	}
}

// Open prints the image URL and asks the OS to open it. Whether a browser
// actually showed up is not checked; a failing opener is only logged since
// the printed URL still works.
func (o *BrowserOpener) Open(payload string) error {
	u := ImageURL(o.serviceURL, o.size, payload)
	fmt.Fprintln(o.out, u)
	if err := o.openURL(u); err != nil {
		o.logger.Warn("could not open browser", "url", u, "err", err)
	}
	return nil
}
