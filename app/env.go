package app

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func readConfigFromENV(envFile string) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil {
			log.Warn("[ENV] Error loading .env file: ", err.Error())
		}
	}

	if os.Getenv("MONGODB_URI") != "" {
		Config.MongoDB.URI = os.Getenv("MONGODB_URI")
	}
	if os.Getenv("MONGODB_DATABASE") != "" {
		Config.MongoDB.Database = os.Getenv("MONGODB_DATABASE")
	}
	if os.Getenv("MONGODB_TIMEOUT_MS") != "" {
		timeoutMillis, err := strconv.ParseInt(os.Getenv("MONGODB_TIMEOUT_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing MONGODB_TIMEOUT_MS: ", err.Error())
		} else {
			Config.MongoDB.TimeoutMillis = timeoutMillis
		}
	}

	if os.Getenv("PORT") != "" {
		port, err := strconv.ParseInt(os.Getenv("PORT"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing PORT: ", err.Error())
		} else {
			Config.Server.Port = port
		}
	}

	// base chain
	if os.Getenv("BASE_RPC_URL") != "" {
		Config.Base.RPCURL = os.Getenv("BASE_RPC_URL")
	}
	if os.Getenv("BASE_CHAIN_ID") != "" {
		Config.Base.ChainID = os.Getenv("BASE_CHAIN_ID")
	}

	// mainnet
	if os.Getenv("MAINNET_RPC_URL") != "" {
		Config.Mainnet.RPCURL = os.Getenv("MAINNET_RPC_URL")
	}
	if os.Getenv("MAINNET_CHAIN_ID") != "" {
		Config.Mainnet.ChainID = os.Getenv("MAINNET_CHAIN_ID")
	}

	// ens
	if os.Getenv("ENS_DOMAIN") != "" {
		Config.ENS.Domain = os.Getenv("ENS_DOMAIN")
	}
	if os.Getenv("ENS_SIGNING_KEY") != "" {
		Config.ENS.SigningKey = os.Getenv("ENS_SIGNING_KEY")
	}
	if os.Getenv("ENS_MIRROR_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv("ENS_MIRROR_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing ENS_MIRROR_ENABLED: ", err.Error())
		} else {
			Config.ENS.MirrorEnabled = enabled
		}
	}

	// gating nft
	if os.Getenv("GATE_NFT_ADDRESS") != "" {
		Config.Gate.NFTAddress = os.Getenv("GATE_NFT_ADDRESS")
	}

	// payment
	if os.Getenv("TREASURY_ADDRESS") != "" {
		Config.Payment.TreasuryAddress = os.Getenv("TREASURY_ADDRESS")
	}

	// auth
	if os.Getenv("RECEIPT_SECRET") != "" {
		Config.Auth.ReceiptSecret = os.Getenv("RECEIPT_SECRET")
	}

	// bankr
	if os.Getenv("BANKR_API_URL") != "" {
		Config.Bankr.APIURL = os.Getenv("BANKR_API_URL")
	}
	if os.Getenv("BANKR_PARTNER_KEY") != "" {
		Config.Bankr.PartnerKey = os.Getenv("BANKR_PARTNER_KEY")
	}

	// farcaster
	if os.Getenv("NEYNAR_API_KEY") != "" {
		Config.Farcaster.NeynarAPIKey = os.Getenv("NEYNAR_API_KEY")
	}
	if os.Getenv("FARCASTER_SIGNER_UUID") != "" {
		Config.Farcaster.SignerUUID = os.Getenv("FARCASTER_SIGNER_UUID")
	}

	// health check
	if os.Getenv("HEALTH_CHECK_INTERVAL_MS") != "" {
		intervalMillis, err := strconv.ParseInt(os.Getenv("HEALTH_CHECK_INTERVAL_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing HEALTH_CHECK_INTERVAL_MS: ", err.Error())
		} else {
			Config.HealthCheck.IntervalMillis = intervalMillis
		}
	}

	// logging
	if Config.Logger.Level == "" {
		logLevel := os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			Config.Logger.Level = "info"
		} else {
			Config.Logger.Level = logLevel
		}
	}

	// google secret manager
	if os.Getenv("GOOGLE_SECRET_MANAGER_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv("GOOGLE_SECRET_MANAGER_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing GOOGLE_SECRET_MANAGER_ENABLED: ", err.Error())
		} else {
			Config.GoogleSecretManager.Enabled = enabled
		}
	}
	if Config.GoogleSecretManager.ProjectId == "" {
		Config.GoogleSecretManager.ProjectId = os.Getenv("GOOGLE_PROJECT_ID")
	}
}
