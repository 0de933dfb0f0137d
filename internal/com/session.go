package com

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/slidewire/slidewire/internal/logging"
)

// Document is an open presentation as seen by the session. Callers
// release documents they do not keep; handles are manually counted.
type Document interface {
	Name() (string, error)
	FullName() (string, error)
	Focus() error
	Release()
}

// Host is the running automation server. Ping must be a cheap property
// read that fails once the process behind the handle is gone.
type Host interface {
	Ping() error
	ActiveDocument() (Document, error)
	Documents() ([]Document, error)
	SetVisible(visible bool) error
	Release()
}

// Connector obtains a Host, either by attaching to a running process
// or by launching a new one.
type Connector interface {
	Attach() (Host, error)
	Launch() (Host, error)
}

// Connect modes reported back to the caller.
const (
	ConnectCached   = "cached"
	ConnectAttached = "attached"
	ConnectLaunched = "launched"
)

// Session tracks the cached host handle and which open presentation
// subsequent tools operate on. It does no locking of its own: every
// method must run on the automation thread, inside a unit of work, so
// access is already serialized.
type Session struct {
	connector Connector
	log       *logging.Logger

	host     Host
	launched bool

	// Full path of the pinned presentation. Empty means tools follow
	// whichever presentation is active.
	targetPath string
}

// SessionStatus describes the session for status tools.
type SessionStatus struct {
	Connected bool   `json:"connected"`
	Launched  bool   `json:"launched"`
	Pinned    string `json:"pinned,omitempty"`
}

// NewSession creates a session around the given connector.
func NewSession(connector Connector, log *logging.Logger) *Session {
	if log == nil {
		log = logging.NewNop()
	}
	return &Session{connector: connector, log: log}
}

// Connect establishes a host handle and reports how it was obtained.
// A healthy cached handle is reused. Otherwise the session attaches to
// a running process and falls back to launching a new one. A freshly
// launched process is made visible unless visible is explicitly false;
// when attaching, visibility changes only if visible is set.
func (s *Session) Connect(visible *bool) (string, error) {
	if s.host != nil {
		if err := s.host.Ping(); err == nil {
			if visible != nil {
				if err := s.host.SetVisible(*visible); err != nil {
					return "", err
				}
			}
			return ConnectCached, nil
		}
		s.log.Debug("cached handle is stale; reconnecting")
		s.Forget()
	}

	host, err := s.connector.Attach()
	if err == nil {
		if visible != nil {
			if err := host.SetVisible(*visible); err != nil {
				host.Release()
				return "", err
			}
		}
		s.host = host
		return ConnectAttached, nil
	}

	host, err = s.connector.Launch()
	if err != nil {
		return "", err
	}
	show := visible == nil || *visible
	if err := host.SetVisible(show); err != nil {
		host.Release()
		return "", err
	}
	s.host = host
	s.launched = true
	return ConnectLaunched, nil
}

// Handle returns a healthy host, reconnecting if the cached one died.
func (s *Session) Handle() (Host, error) {
	if s.host != nil {
		if err := s.host.Ping(); err == nil {
			return s.host, nil
		}
		s.log.Debug("cached handle is stale; reconnecting")
		s.Forget()
	}
	if _, err := s.Connect(nil); err != nil {
		return nil, err
	}
	return s.host, nil
}

// Target resolves the presentation tools should operate on: the pinned
// one if it is still open, otherwise the active one. A pin that no
// longer resolves is cleared and the session falls back silently.
func (s *Session) Target() (Document, error) {
	host, err := s.Handle()
	if err != nil {
		return nil, err
	}

	if s.targetPath != "" {
		doc, err := s.findByPath(host, s.targetPath)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			return doc, nil
		}
		s.log.Warn("pinned presentation is no longer open; falling back to the active one",
			zap.String("path", s.targetPath))
		s.targetPath = ""
	}

	doc, err := host.ActiveDocument()
	if err != nil {
		s.log.Debug("no active presentation", zap.Error(err))
		return nil, ErrNoDocument
	}
	return doc, nil
}

// PinByPosition pins the presentation at the given 1-based position in
// the host's open collection.
func (s *Session) PinByPosition(position int) (Document, error) {
	host, err := s.Handle()
	if err != nil {
		return nil, err
	}
	docs, err := host.Documents()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no presentations are open")
	}
	if position < 1 || position > len(docs) {
		releaseDocs(docs, nil)
		return nil, fmt.Errorf("presentation position %d is out of range; valid positions are 1-%d", position, len(docs))
	}

	doc := docs[position-1]
	path, err := doc.FullName()
	if err != nil {
		releaseDocs(docs, nil)
		return nil, err
	}
	releaseDocs(docs, doc)
	s.targetPath = path
	return doc, nil
}

// PinByName pins the presentation whose short name or full path
// matches name, ignoring case. Zero matches lists what is open; more
// than one match asks the caller to pin by position instead.
func (s *Session) PinByName(name string) (Document, error) {
	host, err := s.Handle()
	if err != nil {
		return nil, err
	}
	docs, err := host.Documents()
	if err != nil {
		return nil, err
	}

	var matches []Document
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		short, err := doc.Name()
		if err != nil {
			releaseDocs(docs, nil)
			return nil, fmt.Errorf("failed to read presentation name: %w", err)
		}
		full, err := doc.FullName()
		if err != nil {
			releaseDocs(docs, nil)
			return nil, fmt.Errorf("failed to read presentation path: %w", err)
		}
		names = append(names, short)
		if strings.EqualFold(short, name) || strings.EqualFold(full, name) {
			matches = append(matches, doc)
		}
	}

	switch len(matches) {
	case 0:
		releaseDocs(docs, nil)
		if len(names) == 0 {
			return nil, fmt.Errorf("no presentations are open")
		}
		return nil, fmt.Errorf("no open presentation matches %q; open presentations: %s", name, strings.Join(names, ", "))
	case 1:
		path, err := matches[0].FullName()
		if err != nil {
			releaseDocs(docs, nil)
			return nil, err
		}
		releaseDocs(docs, matches[0])
		s.targetPath = path
		return matches[0], nil
	default:
		releaseDocs(docs, nil)
		return nil, fmt.Errorf("%d open presentations match %q; pin by position instead", len(matches), name)
	}
}

// Unpin clears the pinned presentation; tools follow the active one
// again.
func (s *Session) Unpin() {
	s.targetPath = ""
}

// Pinned returns the full path of the pinned presentation, or "".
func (s *Session) Pinned() string {
	return s.targetPath
}

// Status reports the session state without forcing a reconnect.
func (s *Session) Status() SessionStatus {
	connected := false
	if s.host != nil && s.host.Ping() == nil {
		connected = true
	}
	return SessionStatus{
		Connected: connected,
		Launched:  s.launched,
		Pinned:    s.targetPath,
	}
}

// Forget drops the cached handle without touching the process behind
// it. The next call that needs a host reconnects.
func (s *Session) Forget() {
	if s.host != nil {
		s.host.Release()
		s.host = nil
	}
	s.launched = false
}

// Release frees everything the session holds. Runs on the worker as
// its shutdown cleanup.
func (s *Session) Release() {
	s.Forget()
	s.targetPath = ""
}

func (s *Session) findByPath(host Host, path string) (Document, error) {
	docs, err := host.Documents()
	if err != nil {
		return nil, err
	}
	var match Document
	for _, doc := range docs {
		if match == nil {
			full, err := doc.FullName()
			if err == nil && strings.EqualFold(full, path) {
				match = doc
				continue
			}
		}
		doc.Release()
	}
	return match, nil
}

// releaseDocs frees every document except keep.
func releaseDocs(docs []Document, keep Document) {
	for _, doc := range docs {
		if doc != keep {
			doc.Release()
		}
	}
}
