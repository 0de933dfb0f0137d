package powerpoint

import (
	"context"
	"fmt"
	"time"

	"github.com/slidewire/slidewire/internal/com"
)

// Client is the typed façade providers call. Every method builds a
// closure over the object layer and runs it on the bridge, so provider
// code never touches a native handle off the automation thread.
type Client struct {
	bridge  *com.Bridge
	session *com.Session
}

// NewClient creates a client over the given bridge and session.
func NewClient(bridge *com.Bridge, session *com.Session) *Client {
	return &Client{bridge: bridge, session: session}
}

// StatusInfo is the application status tools report.
type StatusInfo struct {
	Connected     bool   `json:"connected"`
	Launched      bool   `json:"launched"`
	Pinned        string `json:"pinned,omitempty"`
	Version       string `json:"version,omitempty"`
	Build         string `json:"build,omitempty"`
	Visible       bool   `json:"visible"`
	Presentations int    `json:"presentations"`
}

// PinnedInfo describes the presentation a pin call selected.
type PinnedInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ShapeRef addresses a shape on a slide by name or 1-based index.
type ShapeRef struct {
	Name  string
	Index int
}

func (r ShapeRef) resolve(slide *Slide) (*Shape, error) {
	if r.Name != "" {
		return slide.ShapeByName(r.Name)
	}
	if r.Index > 0 {
		return slide.Shape(r.Index)
	}
	return nil, fmt.Errorf("a shape name or shape index is required")
}

// BridgeStats exposes the bridge counters. Safe off-thread.
func (c *Client) BridgeStats() com.Stats {
	return c.bridge.Stats()
}

// Connect establishes the application handle and reports how it was
// obtained ("cached", "attached", "launched").
func (c *Client) Connect(ctx context.Context, visible *bool) (string, error) {
	value, err := c.bridge.Execute(ctx, func() (interface{}, error) {
		return c.session.Connect(visible)
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// Status reports connection state and, when connected, application
// details. It never forces a connection.
func (c *Client) Status(ctx context.Context) (*StatusInfo, error) {
	value, err := c.bridge.Execute(ctx, func() (interface{}, error) {
		session := c.session.Status()
		info := &StatusInfo{
			Connected: session.Connected,
			Launched:  session.Launched,
			Pinned:    session.Pinned,
		}
		if !session.Connected {
			return info, nil
		}

		app, err := c.app()
		if err != nil {
			return nil, err
		}
		if info.Version, err = app.Version(); err != nil {
			return nil, err
		}
		if info.Build, err = app.Build(); err != nil {
			return nil, err
		}
		if info.Visible, err = app.Visible(); err != nil {
			return nil, err
		}
		if info.Presentations, err = app.PresentationCount(); err != nil {
			return nil, err
		}
		return info, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*StatusInfo), nil
}

// Quit exits the application and forgets the session handle.
func (c *Client) Quit(ctx context.Context) error {
	_, err := c.bridge.Execute(ctx, func() (interface{}, error) {
		app, err := c.app()
		if err != nil {
			return nil, err
		}
		if err := app.Quit(); err != nil {
			return nil, err
		}
		c.session.Forget()
		return nil, nil
	})
	return err
}

// PinByName pins the session target to the presentation matching name.
func (c *Client) PinByName(ctx context.Context, name string) (*PinnedInfo, error) {
	return c.pin(ctx, func() (com.Document, error) {
		return c.session.PinByName(name)
	})
}

// PinByPosition pins the session target to the presentation at the
// 1-based position.
func (c *Client) PinByPosition(ctx context.Context, position int) (*PinnedInfo, error) {
	return c.pin(ctx, func() (com.Document, error) {
		return c.session.PinByPosition(position)
	})
}

// Unpin clears the session target.
func (c *Client) Unpin(ctx context.Context) error {
	_, err := c.bridge.Execute(ctx, func() (interface{}, error) {
		c.session.Unpin()
		return nil, nil
	})
	return err
}

// WithApp runs fn on the automation thread with a healthy application
// handle.
func (c *Client) WithApp(ctx context.Context, fn func(app *Application) (interface{}, error)) (interface{}, error) {
	return c.bridge.Execute(ctx, func() (interface{}, error) {
		app, err := c.app()
		if err != nil {
			return nil, err
		}
		return fn(app)
	})
}

// WithTarget runs fn with the application and the session's target
// presentation.
func (c *Client) WithTarget(ctx context.Context, fn func(app *Application, pres *Presentation) (interface{}, error)) (interface{}, error) {
	return c.withTarget(ctx, c.bridge.Execute, fn)
}

// WithTargetTimeout is WithTarget with a per-call wait deadline for
// long operations such as exports.
func (c *Client) WithTargetTimeout(ctx context.Context, timeout time.Duration, fn func(app *Application, pres *Presentation) (interface{}, error)) (interface{}, error) {
	run := func(ctx context.Context, unit com.UnitOfWork) (interface{}, error) {
		return c.bridge.ExecuteTimeout(ctx, timeout, unit)
	}
	return c.withTarget(ctx, run, fn)
}

// WithSlide runs fn with the slide at the 1-based index of the target
// presentation.
func (c *Client) WithSlide(ctx context.Context, index int, fn func(app *Application, pres *Presentation, slide *Slide) (interface{}, error)) (interface{}, error) {
	return c.WithTarget(ctx, func(app *Application, pres *Presentation) (interface{}, error) {
		slide, err := pres.Slide(index)
		if err != nil {
			return nil, err
		}
		defer slide.Release()
		return fn(app, pres, slide)
	})
}

// WithShape runs fn with the shape addressed by ref on the given
// slide.
func (c *Client) WithShape(ctx context.Context, slideIndex int, ref ShapeRef, fn func(app *Application, pres *Presentation, slide *Slide, shape *Shape) (interface{}, error)) (interface{}, error) {
	return c.WithSlide(ctx, slideIndex, func(app *Application, pres *Presentation, slide *Slide) (interface{}, error) {
		shape, err := ref.resolve(slide)
		if err != nil {
			return nil, err
		}
		defer shape.Release()
		return fn(app, pres, slide, shape)
	})
}

func (c *Client) withTarget(ctx context.Context, run func(context.Context, com.UnitOfWork) (interface{}, error), fn func(app *Application, pres *Presentation) (interface{}, error)) (interface{}, error) {
	return run(ctx, func() (interface{}, error) {
		app, err := c.app()
		if err != nil {
			return nil, err
		}
		doc, err := c.session.Target()
		if err != nil {
			return nil, err
		}
		pres, ok := doc.(*Presentation)
		if !ok {
			return nil, fmt.Errorf("unexpected document implementation %T", doc)
		}
		defer pres.Release()
		return fn(app, pres)
	})
}

func (c *Client) pin(ctx context.Context, pinFn func() (com.Document, error)) (*PinnedInfo, error) {
	value, err := c.bridge.Execute(ctx, func() (interface{}, error) {
		doc, err := pinFn()
		if err != nil {
			return nil, err
		}
		defer doc.Release()

		name, err := doc.Name()
		if err != nil {
			return nil, err
		}
		path, err := doc.FullName()
		if err != nil {
			return nil, err
		}
		return &PinnedInfo{Name: name, Path: path}, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*PinnedInfo), nil
}

// app asserts the session host down to the concrete application type.
// This is the one place the assertion happens.
func (c *Client) app() (*Application, error) {
	host, err := c.session.Handle()
	if err != nil {
		return nil, err
	}
	app, ok := host.(*Application)
	if !ok {
		return nil, fmt.Errorf("unexpected host implementation %T", host)
	}
	return app, nil
}
