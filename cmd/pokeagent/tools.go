package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/pokeagent/pokeagent/internal/config"
	"github.com/pokeagent/pokeagent/internal/container"
	"github.com/pokeagent/pokeagent/internal/tools"
)

var (
	toolsListYAML bool
	toolsCallArgs string
	toolsCallJSON bool
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect and call tools",
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tool definitions",
	Args:  cobra.NoArgs,
	RunE:  runToolsList,
}

var toolsCallCmd = &cobra.Command{
	Use:   "call NAME",
	Short: "Call a tool with JSON arguments",
	Args:  cobra.ExactArgs(1),
	RunE:  runToolsCall,
}

func init() {
	toolsListCmd.Flags().BoolVar(&toolsListYAML, "yaml", false, "Print full definitions as YAML")
	toolsCallCmd.Flags().StringVarP(&toolsCallArgs, "args", "a", "{}", "Arguments as a JSON object")
	toolsCallCmd.Flags().BoolVar(&toolsCallJSON, "json", false, "Print the full result as JSON")

	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsCallCmd)
}

func runToolsList(cmd *cobra.Command, _ []string) error {
	// Listing never calls a tool, so no services are needed.
	reg, err := container.NewToolRegistry(time.UTC, nil, nil)
	if err != nil {
		return err
	}
	return writeTools(cmd.OutOrStdout(), reg.List(), toolsListYAML)
}

func writeTools(w io.Writer, list []tools.Tool, asYAML bool) error {
	if !asYAML {
		for _, t := range list {
			fmt.Fprintf(w, "%-26s %s\n", t.Name, t.Description)
		}
		return nil
	}

	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding tools: %w", err)
	}
	out, err := yaml.JSONToYAML(raw)
	if err != nil {
		return fmt.Errorf("converting tools to YAML: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func runToolsCall(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	setupLogger(cfg.LogLevel)

	c, err := container.New(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := c.Registry().Execute(ctx, args[0], json.RawMessage(toolsCallArgs))
	if err != nil {
		return err
	}
	if err := writeResult(cmd.OutOrStdout(), res, toolsCallJSON); err != nil {
		return err
	}
	if res.IsError {
		return fmt.Errorf("tool %s failed with %s", args[0], res.Code)
	}
	return nil
}

func writeResult(w io.Writer, res tools.Result, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, res.Content)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
