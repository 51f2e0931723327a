package main

import (
	"fmt"

	"github.com/fwojciec/pbidoc"
	"github.com/fwojciec/pbidoc/yaml"
)

// Run executes the init command.
func (c *InitCmd) Run(deps *Dependencies) error {
	if err := yaml.SaveConfig(c.Path, pbidoc.DefaultConfig()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Path)
	return nil
}
