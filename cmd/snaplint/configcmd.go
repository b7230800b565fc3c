package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/snaplint/snaplint/internal/config"
)

// runConfigInit writes a starter .snaplint.kdl into the project root.
func runConfigInit(c *cli.Context) error {
	root := c.String("root")
	if root == "" {
		root = "."
	}
	path, err := config.WriteSample(root)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return nil
}

// runConfigShow prints the effective configuration after file loading
// and flag overrides.
func runConfigShow(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	fmt.Fprintln(c.App.Writer, string(data))
	return nil
}

// runConfigValidate checks the project configuration file for values
// the engine cannot work with.
func runConfigValidate(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}
	fmt.Fprintln(c.App.Writer, "Configuration OK")
	return nil
}
