package cmd

import (
	"fmt"
	"io"

	"github.com/ginjaninja78/BOM-compare/internal/config"
	"github.com/spf13/cobra"
)

var initForce bool

// initCmd writes a default configuration file to start from.
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default " + config.DefaultConfigName,
	Long: `The init command writes the built-in configuration to a YAML file, so the
sheet layout and report defaults can be adjusted. The file is written to
./` + config.DefaultConfigName + ` unless a path is given.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigName
		if len(args) == 1 {
			path = args[0]
		}
		return runInit(path, initForce, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
}

func runInit(path string, force bool, stdout io.Writer) error {
	if err := config.Save(config.DefaultMainConfig(), path, force); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Configuration written to %s\n", path)
	return nil
}
