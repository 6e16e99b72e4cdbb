package main

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/traitmix/pkg/style"
)

//go:embed topics/*.md
var topicsFS embed.FS

func newTopicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topic [name]",
		Short: "Read a guide on trait composition",
		Long:  `Without arguments, topic lists the available guides. With a name, it renders that guide in the terminal.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listTopics(cmd)
			}
			return showTopic(cmd, args[0])
		},
	}
}

func topicNames() ([]string, error) {
	entries, err := topicsFS.ReadDir("topics")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names, nil
}

func listTopics(cmd *cobra.Command) error {
	names, err := topicNames()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Available topics:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintln(out, "\nRun 'traitmix topic <name>' to read one.")
	return nil
}

func showTopic(cmd *cobra.Command, name string) error {
	content, err := topicsFS.ReadFile("topics/" + name + ".md")
	if err != nil {
		names, _ := topicNames()
		return fmt.Errorf("unknown topic '%s' (available: %s)", name, strings.Join(names, ", "))
	}

	fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(string(content)))
	return nil
}

// renderMarkdown converts markdown to terminal output, falling back to the
// raw text when rendering is unavailable or the output is not a terminal
func renderMarkdown(content string) string {
	if style.DetectFormat(os.Stdout) != style.FormatTerminal {
		return content
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}
