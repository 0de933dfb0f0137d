// Package app assembles the slidewire service from its subsystems.
//
// Construction order matters: the logger and metrics come up first,
// then the COM session and the bridge worker that owns the automation
// thread, then the tool providers, and finally the MCP server that
// fronts them. The bridge's recovery hook dismisses modal dialogs and
// its cleanup hook releases the session before the worker leaves its
// apartment.
//
// Key Components:
//   - App: owns every subsystem and the worker lifecycle
//   - NewRegistry: wires the tool providers against the client
//   - RunStdio / RunHTTP: the two transport entry points
//
// Example Usage:
//
//	a, err := app.New(cfg, version)
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//	return a.RunStdio(ctx)
package app
