package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/sitenotes/sitenotes/internal/config"
	"github.com/sitenotes/sitenotes/internal/domain"
)

// ConfigCmd displays the location and options of settings.json
type ConfigCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Init   bool   `help:"Write a starter settings.json with an administrator token if none exists"`
}

// Run executes the config command
func (c *ConfigCmd) Run(cli *CLI) error {
	settingsFile := config.GetSettingsPath()
	example := config.GetSettingsExample()

	if c.Init {
		return initSettings(settingsFile)
	}

	if c.Format == "json" {
		return printJSON(os.Stdout, map[string]any{
			"format":        example,
			"settings_file": settingsFile,
		})
	}

	fmt.Printf("Settings file: %s\n\n", settingsFile)
	fmt.Println("Example settings.json:")
	fmt.Println()
	printSettingsExample(os.Stdout, example)
	fmt.Println()
	fmt.Println("Create or edit this file to configure site notes.")
	fmt.Println("All settings are optional and have sensible defaults.")
	return nil
}

func printSettingsExample(out io.Writer, example map[string]any) {
	keys := make([]string, 0, len(example))
	for key := range example {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, key := range keys {
		var valueStr string
		switch v := example[key].(type) {
		case string:
			valueStr = v
		case bool, int, float64:
			valueStr = fmt.Sprintf("%v", v)
		default:
			data, _ := json.Marshal(v)
			valueStr = string(data)
		}
		fmt.Fprintf(w, "%s\t%s\n", key, valueStr)
	}
	w.Flush()
}

func initSettings(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	token := uuid.New().String()
	starter := &config.Settings{
		ListenAddr: config.DefaultListenAddr,
		Users: []config.UserConfig{
			{ID: 1, Name: "admin", Roles: config.StringArray{domain.RoleAdministrator}, Token: token},
		},
	}
	if err := config.SaveSettings(starter); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", path)
	fmt.Printf("Administrator API token: %s\n", token)
	return nil
}
