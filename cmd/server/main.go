package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/slidewire/slidewire/internal/app"
	"github.com/slidewire/slidewire/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "slidewire",
		Short:         "PowerPoint automation bridge speaking MCP",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	root.SetVersionTemplate("{{printf \"%s\\n\" .Version}}")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML or TOML config file")

	root.AddCommand(
		newServeCommand(&configPath),
		newToolsCommand(&configPath),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and exit",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func newServeCommand(configPath *string) *cobra.Command {
	var transport string
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bridge on the chosen transport",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if address != "" {
				host, port, err := net.SplitHostPort(address)
				if err != nil {
					return fmt.Errorf("parse address %q: %w", address, err)
				}
				cfg.Server.Host = host
				cfg.Server.Port = port
			}

			a, err := app.New(cfg, version)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			switch transport {
			case "stdio":
				return a.RunStdio(ctx)
			case "http":
				return a.RunHTTP(ctx)
			default:
				return fmt.Errorf("unknown transport %q (want stdio or http)", transport)
			}
		},
	}
	cmd.Flags().StringVarP(&transport, "transport", "t", "stdio", "transport to serve: stdio or http")
	cmd.Flags().StringVar(&address, "address", "", "listen address override for the http transport, host:port")
	return cmd
}

func newToolsCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			// Definitions never touch the automation client.
			reg, err := app.NewRegistry(nil, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, svc := range reg.List(nil) {
				fmt.Fprintf(out, "%s: %s\n", svc.ID, svc.Description)
				for _, tool := range svc.Tools {
					fmt.Fprintf(out, "  %-24s %s\n", tool.ID, tool.Description)
				}
			}
			return nil
		},
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}
