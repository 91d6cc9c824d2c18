package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/hashforge/gasplot-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set gasplot configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("input_path: %s\n", cfg.InputPath)
		fmt.Printf("image_path: %s\n", cfg.ImagePath)
		fmt.Printf("length_column: %s\n", cfg.LengthColumn)
		fmt.Printf("gas_column: %s\n", cfg.GasColumn)
		fmt.Printf("small_threshold: %d\n", cfg.SmallThreshold)
		fmt.Printf("max_rows: %d\n", cfg.MaxRows)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "input_path":
			cfg.InputPath = val
		case "image_path":
			cfg.ImagePath = val
		case "length_column":
			cfg.LengthColumn = val
		case "gas_column":
			cfg.GasColumn = val
		case "small_threshold":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("small_threshold must be a positive integer, got %q", val)
			}
			cfg.SmallThreshold = n
		case "max_rows":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return fmt.Errorf("max_rows must be a non-negative integer, got %q", val)
			}
			cfg.MaxRows = n
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
