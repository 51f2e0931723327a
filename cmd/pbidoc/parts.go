package main

import (
	"fmt"
	"text/tabwriter"
)

// Run executes the parts command.
func (c *PartsCmd) Run(deps *Dependencies) error {
	parts, err := deps.Archive.Parts(c.Package)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCONTENT TYPE\tSIZE")
	for _, p := range parts {
		contentType := p.ContentType
		if contentType == "" {
			contentType = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", p.Name, contentType, p.Size)
	}
	return tw.Flush()
}
