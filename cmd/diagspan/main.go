// Package main provides the diagspan CLI, a small demo binary that renders
// one diagnostic against a file on disk.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tamarind-lang/diagspan"
)

func severityFromFlag(s string) (diagspan.Severity, error) {
	switch s {
	case "error":
		return diagspan.Error, nil
	case "bug":
		return diagspan.Bug, nil
	case "warning":
		return diagspan.Warning, nil
	case "note":
		return diagspan.Note, nil
	case "help":
		return diagspan.Help, nil
	default:
		return 0, fmt.Errorf("unknown severity %q (want one of: error, bug, warning, note, help)", s)
	}
}

func main() {
	var (
		severityFlag string
		code         string
		message      string
		notes        []string
		colorize     bool
	)

	cmd := &cobra.Command{
		Use:   "diagspan <file> <start>:<end>",
		Short: "Render a single diagnostic against a source file",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			path, span := args[0], args[1]

			start, end, err := parseSpan(span)
			if err != nil {
				return fmt.Errorf("parse span %q: %w", span, err)
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			severity, err := severityFromFlag(severityFlag)
			if err != nil {
				return err
			}

			color.NoColor = !colorize

			f := diagspan.NewFile(path, content)
			d := diagspan.NewDiagnostic(severity).
				SetHeader(code, message).
				AddLabel(diagspan.Label{
					Style:   diagspan.Primary,
					Range:   f.Range(start, end),
					Content: message,
				})
			for _, n := range notes {
				d.AddNote(n)
			}

			fmt.Println(d.Render())
			return nil
		},
	}

	cmd.Flags().StringVar(&severityFlag, "severity", "error", "diagnostic severity: error, bug, warning, note, help")
	cmd.Flags().StringVar(&code, "code", "", "diagnostic code, e.g. E0308")
	cmd.Flags().StringVar(&message, "message", "", "label and header message")
	cmd.Flags().StringArrayVar(&notes, "note", nil, "a trailing note line (repeatable)")
	cmd.Flags().BoolVar(&colorize, "color", true, "colorize the rendered output")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseSpan(s string) (start, end uint32, err error) {
	var a, b uint32
	n, err := fmt.Sscanf(s, "%d:%d", &a, &b)
	if err != nil || n != 2 {
		return 0, 0, fmt.Errorf("expected <start>:<end>, got %q", s)
	}
	return a, b, nil
}
