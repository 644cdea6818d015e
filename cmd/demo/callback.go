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

var callbackCmd = &cobra.Command{
	Use:   "callback",
	Short: "callback variant: initialize, create a user-bound job-instance, guess, await settlement",
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
		prog := program.NewCallback(ldg, svc)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go worker.New(svc, ldg, prog).Run(ctx)

		if err := prog.Initialize(operator.Address, job.ID); err != nil {
			log.Error(err)
			return
		}
		if err := prog.CreateUser(authority.Address); err != nil {
			log.Error(err)
			return
		}
		log.Infof("user %s bound to job %s", prog.UserAddress(authority.Address), job.ID)

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
