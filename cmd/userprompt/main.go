package main

import (
	"os"

	"github.com/simonhull/userprompt/internal/commands"
	"github.com/simonhull/userprompt/internal/output"
)

func main() {
	app := commands.NewApp()
	rootCmd := commands.RootCmd(app)

	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.DemoCmd(app))
	rootCmd.AddCommand(commands.InitCmd(app))

	if err := rootCmd.Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
