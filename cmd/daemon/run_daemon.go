package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/algorand/go-algorand-sdk/crypto"
	"github.com/algorand/go-algorand-sdk/mnemonic"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oracle-demos/randomness-demo/attestation"
	"github.com/oracle-demos/randomness-demo/ledger"
	"github.com/oracle-demos/randomness-demo/models"
	"github.com/oracle-demos/randomness-demo/program"
	"github.com/oracle-demos/randomness-demo/tools"
	"github.com/oracle-demos/randomness-demo/worker"
)

// DefaultContainer is the container image the demo job is registered with.
const DefaultContainer = "oracle-demos/randomness-function:latest"

var (
	containerImage          string
	guessIntervalSeconds    uint64
	authorityMnemonicString string // the mnemonic of the guessing account
)

func init() {
	tools.SetLogger()

	RunDaemonCmd.Flags().StringVar(&containerImage, "container", DefaultContainer,
		"container image of the off-chain randomness job")

	RunDaemonCmd.Flags().Uint64Var(&guessIntervalSeconds, "interval", 10,
		"seconds between demo guesses")

	RunDaemonCmd.Flags().StringVar(&authorityMnemonicString, "authority-mnemonic", "",
		"25-word mnemonic of the guessing account (optional. default: generated)")
}

// ResolveAccount turns an optional 25-word mnemonic into an account,
// generating a fresh one when no mnemonic is given.
func ResolveAccount(mnemonicString string) (crypto.Account, error) {
	if mnemonicString == "" {
		return crypto.GenerateAccount(), nil
	}
	sk, err := mnemonic.ToPrivateKey(mnemonicString)
	if err != nil {
		return crypto.Account{}, err
	}
	return crypto.AccountFromPrivateKey(sk)
}

var RunDaemonCmd = &cobra.Command{
	Use:   "run-daemon",
	Short: "runs the callback-variant stack and plays a guess every interval",
	Run: func(cmd *cobra.Command, args []string) {
		authority, err := ResolveAccount(authorityMnemonicString)
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
		log.Infof("program id: %s", prog.ID())
		log.Infof("job: %s", job.ID)
		log.Infof("user: %s", prog.UserAddress(authority.Address))

		guess := func() {
			g := models.BoundedResult(worker.RandomUint32(), models.MinResult, models.MaxResult)
			if err := prog.Guess(authority.Address, g); err != nil {
				log.Warnf("guess %d rejected: %v", g, err)
				return
			}
			log.Infof("guessed %d", g)
		}

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		ticker := time.NewTicker(time.Duration(guessIntervalSeconds) * time.Second)
		defer ticker.Stop()

		log.Info("running...")
		guess()
		for {
			select {
			case <-sigs:
				log.Info("shutting down")
				return
			case ev := <-prog.Events():
				log.Info(ev)
			case <-ticker.C:
				guess()
			}
		}
	},
}
