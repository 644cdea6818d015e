package demo

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oracle-demos/randomness-demo/cmd/daemon"
	"github.com/oracle-demos/randomness-demo/models"
	"github.com/oracle-demos/randomness-demo/tools"
)

var (
	guessValue              uint32
	containerImage          string
	authorityMnemonicString string
)

func init() {
	tools.SetLogger()

	DemoCmd.AddCommand(simpleCmd)
	DemoCmd.AddCommand(callbackCmd)

	for _, c := range []*cobra.Command{simpleCmd, callbackCmd} {
		c.Flags().Uint32Var(&guessValue, "guess", 0,
			fmt.Sprintf("guess in [%d,%d] (required)", models.MinResult, models.MaxResult))
		tools.MarkFlagRequired(c.Flags(), "guess")

		c.Flags().StringVar(&containerImage, "container", daemon.DefaultContainer,
			"container image of the off-chain randomness job")

		c.Flags().StringVar(&authorityMnemonicString, "authority-mnemonic", "",
			"25-word mnemonic of the guessing account (optional. default: generated)")
	}
}

var DemoCmd = &cobra.Command{
	Use:   "demo",
	Short: "plays one guess round end to end",
	Run: func(cmd *cobra.Command, args []string) {
		//If no arguments passed, we should fallback to help
		cmd.HelpFunc()(cmd, args)
	},
}

// awaitSettlement blocks until the worker settles the pending guess.
func awaitSettlement(events <-chan models.GuessSettled, timeout time.Duration) (models.GuessSettled, error) {
	select {
	case ev := <-events:
		return ev, nil
	case <-time.After(timeout):
		return models.GuessSettled{}, fmt.Errorf("no settlement after %v", timeout)
	}
}

func printOutcome(ev models.GuessSettled) {
	if ev.Won {
		fmt.Println("You won!")
	} else {
		fmt.Printf("You lost! You guessed %d but the result was %d.\n", ev.Guess, ev.Result)
	}
}
