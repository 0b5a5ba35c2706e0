package main

import (
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bankrclub/registrar/app"
	"github.com/bankrclub/registrar/auth"
	"github.com/bankrclub/registrar/bankr"
	"github.com/bankrclub/registrar/ens"
	"github.com/bankrclub/registrar/eth"
	"github.com/bankrclub/registrar/eth/client"
	"github.com/bankrclub/registrar/farcaster"
	"github.com/bankrclub/registrar/models"
	"github.com/bankrclub/registrar/names"
	"github.com/bankrclub/registrar/registry"
	"github.com/bankrclub/registrar/service"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	configPath := flag.String("config", "", "path to yaml config file")
	envPath := flag.String("env", "", "path to env file")
	flag.Parse()

	absConfigPath := ""
	if *configPath != "" {
		absConfigPath, _ = filepath.Abs(*configPath)
	}
	absEnvPath := ""
	if *envPath != "" {
		absEnvPath, _ = filepath.Abs(*envPath)
	}

	app.InitConfig(absConfigPath, absEnvPath)
	app.InitLogger()
	app.InitDB()

	baseClient, err := client.NewClient(app.Config.Base)
	if err != nil {
		log.WithError(err).Fatal("Error connecting to base rpc")
	}
	baseChainId, err := strconv.ParseInt(app.Config.Base.ChainID, 10, 64)
	if err != nil {
		log.WithError(err).Fatal("Invalid base chain id")
	}

	var mainnetClient client.EthereumClient
	mainnetChainId := int64(1)
	if app.Config.ENS.MirrorEnabled {
		mainnetClient, err = client.NewClient(app.Config.Mainnet)
		if err != nil {
			log.WithError(err).Fatal("Error connecting to mainnet rpc")
		}
		mainnetChainId, err = strconv.ParseInt(app.Config.Mainnet.ChainID, 10, 64)
		if err != nil {
			log.WithError(err).Fatal("Invalid mainnet chain id")
		}
	}

	mirror, err := ens.NewMirror(mainnetClient, app.Config.ENS, mainnetChainId)
	if err != nil {
		log.WithError(err).Fatal("Error creating ens mirror")
	}

	policyConfig, err := names.FromModel(app.Config.Pricing)
	if err != nil {
		log.WithError(err).Fatal("Invalid pricing config")
	}
	policy, err := names.NewPolicy(policyConfig)
	if err != nil {
		log.WithError(err).Fatal("Invalid name policy")
	}

	store := registry.NewStore(app.DB)
	nonces := auth.NewNonceService(app.DB, time.Duration(app.Config.Auth.NonceTTLSecs)*time.Second)
	oracle := eth.NewDexScreenerOracle(app.Config.Payment.OracleURL)

	claims := service.NewClaimService(service.ClaimServiceParams{
		Store:         store,
		Policy:        policy,
		Nonces:        nonces,
		Holder:        eth.NewHolderVerifier(baseClient, app.Config.Gate.NFTAddress),
		Payments:      eth.NewPaymentVerifier(baseClient, oracle, app.Config.Payment, baseChainId),
		Launcher:      bankr.NewLauncher(app.Config.Bankr),
		Announcer:     farcaster.NewAnnouncer(app.Config.Farcaster),
		Mirror:        mirror,
		Metadata:      eth.NewMetadataFetcher(baseClient, app.Config.Gate.NFTAddress),
		Domain:        app.Config.ENS.Domain,
		ReceiptSecret: app.Config.Auth.ReceiptSecret,
	})

	healthService := app.NewHealthCheck(mirror.SignerAddress())
	handlers := service.NewHandlers(claims, healthService)
	httpServer := service.NewHttpServer(app.Config.Server.Port, service.NewRouter(handlers))

	services := []models.Service{healthService, httpServer}
	for _, s := range services {
		go s.Start()
	}

	// Gracefully shut down server
	gracefulStop := make(chan os.Signal, 1)
	done := make(chan bool, 1)
	signal.Notify(gracefulStop, syscall.SIGINT, syscall.SIGTERM)
	go waitForExitSignals(gracefulStop, done)
	<-done

	log.Debug("Gracefully shutting down server...")
	for _, s := range services {
		s.Stop()
	}
	app.DB.Disconnect()
	log.Debug("Server gracefully stopped")
}

func waitForExitSignals(gracefulStop chan os.Signal, done chan bool) {
	sig := <-gracefulStop
	log.Debug("Got signal:", sig)
	done <- true
}
