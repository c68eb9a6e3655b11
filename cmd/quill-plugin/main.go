// Package main is the quill-plugin developer tool: it validates, lists,
// and dry-runs Quill plugins against an in-memory editor.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quill-editor/quill/internal/plugin"
	"github.com/quill-editor/quill/internal/plugin/bridge"
	"github.com/quill-editor/quill/internal/plugin/exec"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quill-plugin",
		Short:         "Inspect and dry-run Quill editor plugins",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(checkCmd(), listCmd(), runCmd())
	return root
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <plugin-root>",
		Short: "Discover and validate all plugins under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := plugin.Load(args[0])
			if err != nil {
				return err
			}
			for _, p := range reg.Plugins() {
				color.Green("ok  %s (%s)", p.Manifest, p.Dir)
			}
			for _, pe := range reg.Errors() {
				color.Red("err %v", pe)
			}
			if len(reg.Errors()) > 0 {
				return fmt.Errorf("%d plugin(s) failed validation", len(reg.Errors()))
			}
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <plugin-root>",
		Short: "List plugins with their triggers and actions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := plugin.Load(args[0])
			if err != nil {
				return err
			}
			for _, p := range reg.Plugins() {
				color.Cyan("%s", p.Manifest)
				for i := range p.Manifest.Triggers {
					t := &p.Manifest.Triggers[i]
					fmt.Printf("  trigger %-20s %-10s -> %s\n", t.ID, t.Kind, t.ActionID)
				}
				for id, a := range p.Manifest.Actions {
					fmt.Printf("  action  %-20s %s\n", id, a.Type)
				}
			}
			for _, pe := range reg.Errors() {
				color.Red("err %v", pe)
			}
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	var (
		filePath string
		language string
	)
	cmd := &cobra.Command{
		Use:   "run <plugin-root> <plugin> <trigger>",
		Short: "Run one trigger against an in-memory editor",
		Long: `Run executes a single trigger's action against an in-memory editor
seeded from --file, then prints the resulting buffer and any
notifications. The real editor is never touched.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, pluginName, triggerID := args[0], args[1], args[2]

			reg, err := plugin.Load(root)
			if err != nil {
				return err
			}
			p, ok := reg.Lookup(pluginName)
			if !ok {
				return fmt.Errorf("%w: %s", plugin.ErrPluginNotFound, pluginName)
			}
			t, ok := p.Manifest.TriggerByID(triggerID)
			if !ok {
				return fmt.Errorf("%w: %s", plugin.ErrTriggerNotFound, triggerID)
			}

			var text string
			if filePath != "" {
				data, err := os.ReadFile(filePath)
				if err != nil {
					return err
				}
				text = string(data)
			}

			ed := bridge.NewEditor(text,
				bridge.WithPath(filePath),
				bridge.WithLanguage(language),
			)

			if err := exec.NewExecutor().RunTrigger(p, t, ed); err != nil {
				return err
			}

			for _, n := range ed.Notifications() {
				if n.Title != "" {
					color.Yellow("[%s] %s", n.Title, n.Message)
				} else {
					color.Yellow("%s", n.Message)
				}
			}
			out, err := ed.Text()
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&filePath, "file", "", "file to seed the buffer from")
	cmd.Flags().StringVar(&language, "language", "", "language identifier for the buffer")
	return cmd
}
