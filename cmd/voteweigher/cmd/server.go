package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"boscoin.io/voteweigher/cmd/voteweigher/common"
	"boscoin.io/voteweigher/lib/api"
	"boscoin.io/voteweigher/lib/bindings"
	vcommon "boscoin.io/voteweigher/lib/common"
	"boscoin.io/voteweigher/lib/metrics"
	"boscoin.io/voteweigher/lib/quorum"
	"boscoin.io/voteweigher/lib/storage"
	"boscoin.io/voteweigher/lib/weigher"
)

const defaultBind string = "0.0.0.0:12345"
const defaultLogLevel logging.Lvl = logging.LvlInfo

var (
	flagBind                string = vcommon.GetENVValue("VOTEWEIGHER_BIND", defaultBind)
	flagLogLevel            string = vcommon.GetENVValue("VOTEWEIGHER_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput           string = vcommon.GetENVValue("VOTEWEIGHER_LOG_OUTPUT", "")
	flagStorageConfigString string
	flagSnapshot            string = vcommon.GetENVValue("VOTEWEIGHER_SNAPSHOT", "")
	flagAdmins              common.ListFlags
)

var (
	serverCmd *cobra.Command

	storageConfig *storage.Config
	admins        []ethcommon.Address
	logLevel      logging.Lvl
	log           logging.Logger
)

func init() {
	var err error

	serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Run voteweigher server",
		Run: func(c *cobra.Command, args []string) {
			parseFlagsServer()

			if err := runServer(); err != nil {
				common.PrintError(serverCmd, err)
			}
			return
		},
	}

	// storage
	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		common.PrintFlagsError(serverCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		common.PrintFlagsError(serverCmd, "--storage", err)
	}
	flagStorageConfigString = vcommon.GetENVValue("VOTEWEIGHER_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	serverCmd.Flags().StringVar(&flagBind, "bind", flagBind, "address to listen on ('0.0.0.0:12345')")
	serverCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	serverCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	serverCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	serverCmd.Flags().StringVar(&flagSnapshot, "snapshot", flagSnapshot, "delegation snapshot file to seed share balances")
	serverCmd.Flags().Var(&flagAdmins, "admin", "address allowed to mutate quorums; can be given multiple times")

	serverCmd.MarkFlagRequired("admin")

	rootCmd.AddCommand(serverCmd)
}

func parseFlagsServer() {
	var err error

	if len(flagAdmins) < 1 {
		common.PrintFlagsError(serverCmd, "--admin", fmt.Errorf("at least one admin address must be given"))
	}
	for _, admin := range flagAdmins {
		if !ethcommon.IsHexAddress(admin) {
			common.PrintFlagsError(serverCmd, "--admin", fmt.Errorf("'%s' is not a hex address", admin))
		}
		admins = append(admins, ethcommon.HexToAddress(admin))
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		common.PrintFlagsError(serverCmd, "--storage", err)
	}

	if len(flagSnapshot) > 0 {
		if _, err = os.Stat(flagSnapshot); os.IsNotExist(err) {
			common.PrintFlagsError(serverCmd, "--snapshot", err)
		}
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		common.PrintFlagsError(serverCmd, "--log-level", err)
	}

	var logHandler logging.Handler
	logHandler = logging.StreamHandler(os.Stdout, vcommon.DefaultLogFormatter())

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, logging.JsonFormat()); err != nil {
			common.PrintFlagsError(serverCmd, "--log-output", err)
		}
	}

	log = logging.New("module", "main")
	vcommon.SetLogging(log, logLevel, logHandler)
	quorum.SetLogging(logLevel, logHandler)
	weigher.SetLogging(logLevel, logHandler)

	log.Info("Starting voteweigher")

	// print flags
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tbind", flagBind)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\tsnapshot", flagSnapshot)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)

	var al []interface{}
	for i, admin := range admins {
		al = append(al, fmt.Sprintf("\n\tadmin#%d", i))
		al = append(al, admin.Hex())
	}
	parsedFlags = append(parsedFlags, al...)

	log.Debug("parsed flags:", parsedFlags...)
}

func runServer() error {
	metrics.InitPrometheusMetrics()
	metrics.SetVersion()

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)

		return err
	}
	defer st.Close()

	ledger := bindings.NewDelegationLedger()
	if len(flagSnapshot) > 0 {
		if ledger, err = bindings.LoadDelegationSnapshot(flagSnapshot); err != nil {
			log.Crit("failed to load delegation snapshot", "error", err)

			return err
		}
	}

	registry := quorum.NewRegistry(st, bindings.NewAdminSet(admins...))
	wg := weigher.New(registry, ledger)

	if count, err := registry.Count(); err == nil {
		metrics.Registry.SetQuorums(count)
	}

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	api.NewNetworkHandlerAPI(registry, wg, st).AddAPIHandlers(router)

	server := &http.Server{
		Addr:    flagBind,
		Handler: handlers.CombinedLoggingHandler(os.Stdout, router),
	}

	var g run.Group
	{
		g.Add(func() error {
			log.Info("listening", "bind", flagBind)
			return server.ListenAndServe()
		}, func(error) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(ctx)
		})
	}
	{
		sigc := make(chan os.Signal, 1)
		done := make(chan struct{})
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		g.Add(func() error {
			select {
			case s := <-sigc:
				return fmt.Errorf("received signal %s", s)
			case <-done:
				return nil
			}
		}, func(error) {
			close(done)
		})
	}

	if err := g.Run(); err != nil {
		log.Info("server stopped", "error", err)
	}

	return nil
}
