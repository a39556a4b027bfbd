package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/Muhammad-Raisul-Maharub/maasathi-health/api"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/connectivity"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/external/remote"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/external/session"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/store"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/syncer"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/utils"
)

var (
	server *api.Server
	ormDB  *gorm.DB
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("maasathi")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())
	runCtx, cancelRun := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		cancelRun()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown local api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if ormDB != nil {
			log.Info("Shutting down db store")
			if err := ormDB.Close(); err != nil {
				log.Error(err)
			}
		}

		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	utils.InitI18NBundle()
	log.WithField("prefix", "init").Info("Initialized i18n bundle")

	// Open the on-device store
	var err error
	ormDB, err = gorm.Open("sqlite3", viper.GetString("db.path"))
	if err != nil {
		log.Panic(err)
	}

	maasathiStore := store.NewMaaSathiStore(ormDB)
	if err := maasathiStore.Migrate(); err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Info("Opened local record store")

	// Connectivity monitor: starts offline, one probe establishes the state
	network := connectivity.NewMonitor(viper.GetString("network.probe"), httpClient)
	probeCtx, cancelProbe := context.WithTimeout(initialCtx, 5*time.Second)
	network.Probe(probeCtx)
	cancelProbe()
	log.WithField("prefix", "init").Info("Initial connectivity: ", network.IsOnline())

	// Remote store and auth service clients
	remoteClient := remote.NewClient(
		viper.GetString("remote.endpoint"),
		viper.GetString("remote.apikey"),
		httpClient)
	sessionClient := session.NewClient(
		viper.GetString("remote.endpoint"),
		viper.GetString("remote.apikey"),
		httpClient)

	// Sync engine; drains unsynced rows whenever connectivity returns
	engine := syncer.NewEngine(maasathiStore, remoteClient, sessionClient, network)
	go engine.Run(runCtx)
	log.WithField("prefix", "init").Info("Initialized sync engine")

	// Init http server
	server = api.NewServer(maasathiStore, sessionClient, engine, network)
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
