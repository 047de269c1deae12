package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fleetglass/agentmap/pkg/mapping"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Print the active canonical field registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		var reg *mapping.Registry
		if flagRegistry != "" {
			var err error
			reg, err = mapping.LoadRegistryFile(flagRegistry)
			if err != nil {
				return err
			}
		} else {
			reg = mapping.DefaultRegistry()
		}

		for _, field := range reg.Fields() {
			required := ""
			if field.Required {
				required = " (required)"
			}
			fmt.Printf("%s%s [%s]\n", field.Key, required, field.Shape)
			if len(field.Aliases) > 0 {
				fmt.Printf("  aliases: %s\n", strings.Join(field.Aliases, ", "))
			}
		}
		return nil
	},
}
