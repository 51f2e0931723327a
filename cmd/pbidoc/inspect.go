package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/pbidoc"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			err = pbidoc.Errorf(pbidoc.ENOTFOUND, "report %s not found", c.Path)
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	defer f.Close()

	summary, err := deps.Inspector.Inspect(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Fprintln(deps.Stdout, summary.Title)
	if summary.ReportName != "" {
		fmt.Fprintf(deps.Stdout, "Report name: %s\n", summary.ReportName)
	}
	if summary.GeneratedOn != "" {
		fmt.Fprintf(deps.Stdout, "Documentation date: %s\n", summary.GeneratedOn)
	}
	fmt.Fprintln(deps.Stdout)
	for _, s := range summary.Sections {
		fmt.Fprintf(deps.Stdout, "  %s: %d rows, %d columns\n", s.Title, s.Rows, len(s.Headers))
	}
	return nil
}
