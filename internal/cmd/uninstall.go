package cmd

import (
	"context"
	"fmt"
)

// UninstallCmd removes every table, option and screenshot
type UninstallCmd struct {
	Force bool `help:"Skip confirmation" short:"f"`
}

// Run executes the uninstall command
func (u *UninstallCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}

	if !u.Force {
		ok, err := confirm(
			"Uninstall site notes?",
			"All comments, replies, settings and screenshots are deleted. This cannot be undone.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cli.Container.CommentService.Uninstall(context.Background(), user); err != nil {
		return fmt.Errorf("failed to uninstall: %w", err)
	}
	fmt.Println("Site notes uninstalled")
	return nil
}
