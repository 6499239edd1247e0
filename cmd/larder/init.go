// Init command writes a default configuration file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/internal/paths"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config.yaml to the configuration directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		path, err := writeDefaultConfig(configDir)
		if err != nil {
			return err
		}
		fmt.Println("wrote", path)
		return nil
	},
}
