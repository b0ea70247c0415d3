package rodhost

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/internal/errors"
)

// Config describes how to reach the browser.
type Config struct {
	// ControlURL connects to a running browser. When empty one is launched.
	ControlURL string
	// Bin is the browser binary to launch. Empty uses the launcher's lookup.
	Bin string
	// Headless launches without a window.
	Headless bool
	// URL is the page to open. Empty opens about:blank.
	URL string
	// WithoutClassList forces the class attribute fallback.
	WithoutClassList bool

	Logger *slog.Logger
}

// Document is a browser page.
type Document struct {
	page    *rod.Page
	browser *rod.Browser
	launch  *launcher.Launcher

	classList bool
	logger    *slog.Logger

	mu       sync.Mutex
	bindings map[string]*binding
}

// binding is one page.Expose function shared by every element and event
// type the listener is registered for.
type binding struct {
	listener *mkdom.Listener
	stop     func() error
	refs     int
}

var _ mkdom.Document = (*Document)(nil)

// Open connects to or launches a browser and opens cfg.URL.
func Open(ctx context.Context, cfg Config) (*Document, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "rodhost")

	var l *launcher.Launcher
	controlURL := cfg.ControlURL
	if controlURL == "" {
		l = launcher.New().Headless(cfg.Headless)
		if cfg.Bin != "" {
			l = l.Bin(cfg.Bin)
		}
		u, err := l.Context(ctx).Launch()
		if err != nil {
			return nil, errors.New("E013").WithDetail("launch failed").Wrap(err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		if l != nil {
			l.Kill()
		}
		return nil, errors.New("E013").WithDetail("connect failed").Wrap(err)
	}

	url := cfg.URL
	if url == "" {
		url = "about:blank"
	}
	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		browser.Close()
		if l != nil {
			l.Kill()
		}
		return nil, errors.New("E013").WithDetailf("open %s", url).Wrap(err)
	}
	if err := page.WaitLoad(); err != nil {
		logger.Warn("page load incomplete", "url", url, "error", err)
	}
	logger.Debug("page opened", "url", url)

	d := New(page, cfg.WithoutClassList, logger)
	d.browser = browser
	d.launch = l
	return d, nil
}

// New wraps an existing page.
func New(page *rod.Page, withoutClassList bool, logger *slog.Logger) *Document {
	if logger == nil {
		logger = slog.Default()
	}
	return &Document{
		page:      page,
		classList: !withoutClassList,
		logger:    logger,
		bindings:  make(map[string]*binding),
	}
}

// Page returns the underlying page.
func (d *Document) Page() *rod.Page {
	return d.page
}

// HTML returns the page markup.
func (d *Document) HTML() (string, error) {
	s, err := d.page.HTML()
	if err != nil {
		return "", errors.New("E010").WithDetail("html").Wrap(err)
	}
	return s, nil
}

// Close releases listener bindings and, if Open started them, the browser
// and launcher.
func (d *Document) Close() error {
	d.mu.Lock()
	for id, b := range d.bindings {
		if b.stop != nil {
			b.stop()
		}
		delete(d.bindings, id)
	}
	d.mu.Unlock()

	var err error
	if d.browser != nil {
		err = d.browser.Close()
	}
	if d.launch != nil {
		d.launch.Kill()
	}
	return err
}

// element asserts n is an element of this host.
func (d *Document) element(n mkdom.Node) (*rod.Element, error) {
	el, ok := n.(*rod.Element)
	if !ok || el == nil {
		return nil, errors.New("E012").WithDetailf("%T", n)
	}
	return el, nil
}

// hostErr maps a browser failure to a coded error.
func hostErr(op string, err error) error {
	msg := err.Error()
	code := "E010"
	switch {
	case strings.Contains(msg, "HierarchyRequestError"), strings.Contains(msg, "NotFoundError"):
		code = "E005"
	case strings.Contains(msg, "is not a valid selector"):
		code = "E003"
	}
	return errors.New(code).WithDetail(op).Wrap(err)
}

// eval runs fn with this bound to el and returns the result by value.
func (d *Document) eval(op string, el *rod.Element, fn string, args ...any) (gson.JSON, error) {
	res, err := el.Evaluate(rod.Eval(fn, args...))
	if err != nil {
		return gson.JSON{}, hostErr(op, err)
	}
	return res.Value, nil
}

// evalNode runs fn with this bound to el and returns the resulting
// element, or nil when fn returns null.
func (d *Document) evalNode(op string, el *rod.Element, fn string, args ...any) (mkdom.Node, error) {
	var (
		res *proto.RuntimeRemoteObject
		err error
	)
	opts := rod.Eval(fn, args...).ByObject()
	if el == nil {
		res, err = d.page.Evaluate(opts)
	} else {
		res, err = el.Evaluate(opts)
	}
	if err != nil {
		return nil, hostErr(op, err)
	}
	if res.ObjectID == "" {
		return nil, nil
	}
	node, err := d.page.ElementFromObject(res)
	if err != nil {
		return nil, hostErr(op, err)
	}
	return node, nil
}

// arg passes an element to JavaScript by reference, or null.
func arg(el *rod.Element) any {
	if el == nil {
		return nil
	}
	return el.Object
}
