package demo

import (
	"context"
	"time"

	"github.com/algorand/go-algorand-sdk/crypto"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oracle-demos/randomness-demo/attestation"
	"github.com/oracle-demos/randomness-demo/cmd/daemon"
	"github.com/oracle-demos/randomness-demo/ledger"
	"github.com/oracle-demos/randomness-demo/program"
	"github.com/oracle-demos/randomness-demo/worker"
)

var simpleCmd = &cobra.Command{
	Use:   "simple",
	Short: "fire-and-forget variant: guess, trigger a single-use job-instance, await settlement",
	Run: func(cmd *cobra.Command, args []string) {
		authority, err := daemon.ResolveAccount(authorityMnemonicString)
		if err != nil {
			log.Errorf("invalid authority mnemonic: %v", err)
			return
		}
		operator := crypto.GenerateAccount()

		ldg := ledger.New()
		svc := attestation.New()
		job, err := svc.RegisterJob(operator.Address, containerImage)
		if err != nil {
			log.Error(err)
			return
		}
		prog := program.NewSimple(ldg, svc, job.ID)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go worker.New(svc, ldg, prog).Run(ctx)

		if err := prog.Guess(authority.Address, guessValue); err != nil {
			log.Error(err)
			return
		}
		log.Infof("guessed %d, waiting for the off-chain result...", guessValue)

		ev, err := awaitSettlement(prog.Events(), 10*time.Second)
		if err != nil {
			log.Error(err)
			return
		}
		printOutcome(ev)
	},
}
