package chartfile

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserOptions configures RasterizeSVG.
type BrowserOptions struct {
	Timeout time.Duration // 0 = 30s
	Logger  *log.Logger   // progress messages (nil = silent)
}

// SVGDataURI encodes an SVG document as a base64 data URI.
func SVGDataURI(svg string) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// RasterizeSVG renders svg to PNG with a headless Chrome and writes the
// screenshot to w. Use it when the system fonts of a browser should be used
// instead of the built-in font of RenderPNG.
func RasterizeSVG(ctx context.Context, svg string, w io.Writer, opts BrowserOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, timeout)
	defer cancelRun()

	var shot []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate(SVGDataURI(svg)),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &shot, chromedp.ByQuery),
	}

	logger.Println("starting headless browser")
	if err := chromedp.Run(runCtx, tasks); err != nil {
		return fmt.Errorf("browser render: %w", err)
	}
	if len(shot) == 0 {
		return errors.New("browser render: empty screenshot")
	}
	logger.Printf("screenshot captured (%d bytes)", len(shot))

	_, err := w.Write(shot)
	return err
}
