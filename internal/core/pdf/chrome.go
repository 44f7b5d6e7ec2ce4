package pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// launchAttempts is how often a browser start is tried before giving up.
const launchAttempts = 2

// ChromeEngine drives a headless Chrome through the DevTools protocol.
type ChromeEngine struct {
	execPath string
}

// NewChromeEngine uses the Chrome binary at execPath, or the one found on
// PATH when execPath is empty.
func NewChromeEngine(execPath string) *ChromeEngine {
	return &ChromeEngine{execPath: execPath}
}

func (c *ChromeEngine) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1920, 1080),
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}
	return opts
}

func (c *ChromeEngine) Load(ctx context.Context, url, markerID string, timeout time.Duration) (Session, error) {
	s, err := c.launch(ctx)
	if err != nil {
		return nil, err
	}

	if err := chromedp.Run(s.ctx, chromedp.Navigate(url)); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	waitCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	if err := chromedp.Run(waitCtx, chromedp.WaitReady("#"+markerID, chromedp.ByQuery)); err != nil {
		s.Close()
		if errors.Is(err, context.DeadlineExceeded) || waitCtx.Err() != nil {
			return nil, ErrLoadTimeout
		}
		return nil, fmt.Errorf("failed waiting for #%s: %w", markerID, err)
	}

	return s, nil
}

// launch starts the browser, retrying once when the first start fails.
func (c *ChromeEngine) launch(ctx context.Context) (*chromeSession, error) {
	var lastErr error
	for attempt := 1; attempt <= launchAttempts; attempt++ {
		allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
		browserCtx, browserCancel := chromedp.NewContext(allocCtx,
			chromedp.WithLogf(func(format string, args ...interface{}) {
				log.Debug().Msgf("chromedp: "+format, args...)
			}),
		)

		// Run without actions starts the browser
		if err := chromedp.Run(browserCtx); err != nil {
			browserCancel()
			allocCancel()
			lastErr = err
			log.Warn().Err(err).Int("attempt", attempt).Msg("⚠️ Failed to start headless Chrome")
			continue
		}

		return &chromeSession{ctx: browserCtx, cancel: browserCancel, allocCancel: allocCancel}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrBrowserUnavailable, lastErr)
}

type chromeSession struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

const contentBoxJS = `(() => {
	const el = document.getElementById("content") || document.body;
	const r = el.getBoundingClientRect();
	return {width: r.width, height: r.height};
})()`

func (s *chromeSession) ContentBox(ctx context.Context) (Box, error) {
	var box Box
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(contentBoxJS, &box)); err != nil {
		return Box{}, fmt.Errorf("failed to measure content: %w", err)
	}
	return box, nil
}

func (s *chromeSession) PrintToPDF(ctx context.Context, params PrintParams) ([]byte, error) {
	var data []byte
	err := chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		data, _, err = page.PrintToPDF().
			WithLandscape(params.Landscape).
			WithPrintBackground(params.PrintBackground).
			WithScale(params.Scale).
			WithPaperWidth(params.PaperWidth).
			WithPaperHeight(params.PaperHeight).
			WithPreferCSSPageSize(false).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("print to pdf failed: %w", err)
	}
	return data, nil
}

// Close shuts the browser down and releases the allocator.
func (s *chromeSession) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancel()
	s.allocCancel()
	return err
}

var _ Engine = (*ChromeEngine)(nil)
