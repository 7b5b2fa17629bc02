package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sitenotes/sitenotes/internal/domain"
)

// SettingsCmd manages the stored site notes settings
type SettingsCmd struct {
	Set  SettingsSetCmd  `cmd:"set" help:"Change settings; omitted flags keep their value"`
	View SettingsViewCmd `cmd:"view" help:"Show the current settings" default:"1"`
}

// SettingsViewCmd shows the current settings
type SettingsViewCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the view command
func (s *SettingsViewCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}
	settings, err := cli.Container.CommentService.GetSettings(context.Background(), user)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if s.Format == "json" {
		return printJSON(os.Stdout, settings)
	}
	printSettings(os.Stdout, settings)
	return nil
}

func printSettings(out io.Writer, s domain.Settings) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "allowed_roles\t%s\n", strings.Join(s.AllowedRoles, ", "))
	fmt.Fprintf(w, "auto_screenshot\t%t\n", s.AutoScreenshot)
	fmt.Fprintf(w, "enable_frontend_comments\t%t\n", s.EnableFrontendComments)
	fmt.Fprintf(w, "screenshot_quality\t%.1f\n", s.ScreenshotQuality)
	w.Flush()
}

// SettingsSetCmd changes settings
type SettingsSetCmd struct {
	AllowedRoles      []string `help:"Roles allowed to use site notes (comma separated)" name:"allowed-roles" sep:","`
	AutoScreenshot    string   `help:"Capture a screenshot with each comment (on or off)" name:"auto-screenshot"`
	Frontend          string   `help:"Enable front-end commenting (on or off)" name:"frontend"`
	ScreenshotQuality float64  `help:"Screenshot quality between 0.1 and 1.0" name:"screenshot-quality"`
}

// Run executes the set command
func (s *SettingsSetCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}
	ctx := context.Background()

	current, err := cli.Container.CommentService.GetSettings(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	next, err := s.apply(current)
	if err != nil {
		return err
	}
	saved, err := cli.Container.CommentService.SaveSettings(ctx, user, next)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Println("Settings saved")
	printSettings(os.Stdout, saved)
	return nil
}

// apply overlays the supplied flags on current
func (s *SettingsSetCmd) apply(current domain.Settings) (domain.Settings, error) {
	if len(s.AllowedRoles) > 0 {
		roles := make([]string, 0, len(s.AllowedRoles))
		for _, r := range s.AllowedRoles {
			if r = strings.TrimSpace(r); r != "" {
				roles = append(roles, r)
			}
		}
		current.AllowedRoles = roles
	}
	if s.AutoScreenshot != "" {
		on, err := parseSwitch("auto-screenshot", s.AutoScreenshot)
		if err != nil {
			return current, err
		}
		current.AutoScreenshot = on
	}
	if s.Frontend != "" {
		on, err := parseSwitch("frontend", s.Frontend)
		if err != nil {
			return current, err
		}
		current.EnableFrontendComments = on
	}
	if s.ScreenshotQuality != 0 {
		current.ScreenshotQuality = s.ScreenshotQuality
	}
	return current, nil
}

func parseSwitch(field, raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes", "true", "1":
		return true, nil
	case "off", "no", "false", "0":
		return false, nil
	}
	return false, domain.NewValidationError(field, "must be on or off")
}
