package powerpoint

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"go.uber.org/zap"

	"github.com/slidewire/slidewire/internal/com"
	"github.com/slidewire/slidewire/internal/logging"
)

// ProgID is the automation identifier PowerPoint registers.
const ProgID = "PowerPoint.Application"

// ConnectionError reports that PowerPoint could not be reached or
// started at all.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to PowerPoint (%v); check that PowerPoint is installed", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Connector obtains Application handles for the session, attaching to
// a running instance before launching a new one.
type Connector struct {
	log *logging.Logger
}

// NewConnector creates a connector.
func NewConnector(log *logging.Logger) *Connector {
	if log == nil {
		log = logging.NewNop()
	}
	return &Connector{log: log}
}

// Attach binds to an already running PowerPoint instance.
func (c *Connector) Attach() (com.Host, error) {
	unknown, err := oleutil.GetActiveObject(ProgID)
	if err != nil {
		return nil, fmt.Errorf("no running PowerPoint instance: %w", err)
	}
	c.log.Debug("attached to a running PowerPoint instance")
	return wrapUnknown(unknown)
}

// Launch starts a new PowerPoint process.
func (c *Connector) Launch() (com.Host, error) {
	unknown, err := oleutil.CreateObject(ProgID)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	c.log.Info("launched a new PowerPoint instance", zap.String("prog_id", ProgID))
	return wrapUnknown(unknown)
}

func wrapUnknown(unknown *ole.IUnknown) (com.Host, error) {
	disp, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		return nil, fmt.Errorf("automation interface query failed: %w", err)
	}
	return &Application{disp: disp}, nil
}
