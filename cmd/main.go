package main

import (
	"github.com/oracle-demos/randomness-demo/cmd/daemon"
	"github.com/oracle-demos/randomness-demo/cmd/demo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(daemon.RunDaemonCmd)
	rootCmd.AddCommand(demo.DemoCmd)
}

var rootCmd = &cobra.Command{
	Use:   "randomness-demo",
	Short: "demo that requests verifiable off-chain randomness and settles guesses with it",
	Run: func(cmd *cobra.Command, args []string) {
		//If no arguments passed, we should fallback to help
		cmd.HelpFunc()(cmd, args)
	},
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		panic(err)
	}
}
