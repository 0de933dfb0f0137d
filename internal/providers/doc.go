// Package providers implements the tool providers behind the registry.
//
// Each provider wraps one area of presentation automation behind a
// standardized tool-based interface. Providers never talk to COM
// directly; they drive the powerpoint client, which marshals every
// native call onto the single automation thread.
//
// Available Providers:
//   - App: application visibility, window state, version
//   - Deck: open, attach, create, save, close, target pinning
//   - Slide: add, delete, move, duplicate, layout, notes
//   - Shape: add, arrange, style, delete
//   - Text: text frames, bullets, find and replace, formatting
//   - Table: table creation and cell editing
//   - Media: pictures, remote images, icons, audio, video
//   - Export: PDF, images, handouts, archives
//   - Show: slideshow start, navigation, end
//   - Sections: section management
//   - System: host health, process stats, bridge counters
//
// Provider Interface:
//   - Definition(): Returns service metadata and tool definitions
//   - Execute(): Executes a tool with parameters and context
//
// Example Usage:
//
//	p := deck.NewProvider(client, cfg.Templates.Dirs, cfg.Templates.Pattern)
//	result, err := p.Execute(ctx, "deck.open", params, callCtx)
package providers
