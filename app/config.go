package app

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/bankrclub/registrar/models"
	"gopkg.in/yaml.v2"
)

var (
	Config models.Config
)

func InitConfig(configFile string, envFile string) {
	if configFile != "" {
		yamlFile, err := os.ReadFile(configFile)
		if err != nil {
			log.Fatalf("[CONFIG] Error reading config file %q: %s", configFile, err.Error())
		}
		if err := yaml.Unmarshal(yamlFile, &Config); err != nil {
			log.Fatalf("[CONFIG] Error unmarshalling config file %q: %s", configFile, err.Error())
		}
	}
	readConfigFromENV(envFile)
	applyConfigDefaults()
	readSecretsFromGSM()
	validateConfig()
}

func applyConfigDefaults() {
	if Config.MongoDB.TimeoutMillis == 0 {
		Config.MongoDB.TimeoutMillis = 5000
	}
	if Config.Server.Port == 0 {
		Config.Server.Port = 8080
	}
	if Config.Base.RPCURL == "" {
		Config.Base.RPCURL = "https://mainnet.base.org"
	}
	if Config.Base.ChainID == "" {
		Config.Base.ChainID = "8453"
	}
	if Config.Base.RPCTimeoutMillis == 0 {
		Config.Base.RPCTimeoutMillis = 10000
	}
	if Config.Mainnet.RPCURL == "" {
		Config.Mainnet.RPCURL = "https://ethereum.publicnode.com"
	}
	if Config.Mainnet.ChainID == "" {
		Config.Mainnet.ChainID = "1"
	}
	if Config.Mainnet.RPCTimeoutMillis == 0 {
		Config.Mainnet.RPCTimeoutMillis = 10000
	}

	if Config.ENS.Domain == "" {
		Config.ENS.Domain = "bankrclub.eth"
	}
	if Config.ENS.NameWrapperAddress == "" {
		Config.ENS.NameWrapperAddress = "0xD4416b13d2b3a9aBae7AcD5D6C2BbDBE25686401"
	}
	if Config.ENS.ResolverAddress == "" {
		Config.ENS.ResolverAddress = "0x3a62109CCAd858907A5750b906618eA7B433d3a3"
	}
	if Config.ENS.ParentExpiry == 0 {
		Config.ENS.ParentExpiry = 1781156915
	}

	if Config.Gate.NFTAddress == "" {
		Config.Gate.NFTAddress = "0x9FAb8C51f911f0ba6dab64fD6E979BcF6424Ce82"
	}

	if Config.Pricing.FreeMinLength == 0 {
		Config.Pricing.FreeMinLength = 9
	}
	if len(Config.Pricing.ReservedNames) == 0 {
		Config.Pricing.ReservedNames = []string{
			"bankr", "admin", "www", "api", "app", "mail",
			"help", "support", "team", "clawdia",
		}
	}
	if len(Config.Pricing.PriceSchedule) == 0 {
		Config.Pricing.PriceSchedule = map[int]string{
			3: "0.05",
			4: "0.02",
			5: "0.01",
			6: "0.0075",
			7: "0.005",
			8: "0.0025",
		}
	}
	if len(Config.Pricing.Discounts) == 0 {
		Config.Pricing.Discounts = map[string]string{
			"BNKR":    "0.10",
			"CLAWDIA": "0.25",
		}
	}

	if len(Config.Payment.TokenAddresses) == 0 {
		Config.Payment.TokenAddresses = map[string]string{
			"BNKR":    "0x22aF33FE49fD1Fa80c7149773dDe5890D3c76F3b",
			"CLAWDIA": "0xbbd9aDe16525acb4B336b6dAd3b9762901522B07",
		}
	}
	if Config.Payment.TolerancePercent == 0 {
		Config.Payment.TolerancePercent = 80
	}
	if Config.Payment.OracleURL == "" {
		Config.Payment.OracleURL = "https://api.dexscreener.com"
	}

	if Config.Auth.NonceTTLSecs == 0 {
		Config.Auth.NonceTTLSecs = 300
	}

	if Config.Bankr.APIURL == "" {
		Config.Bankr.APIURL = "https://api.bankr.bot/token-launches"
	}
	if Config.Bankr.TimeoutSecs == 0 {
		Config.Bankr.TimeoutSecs = 15
	}

	if Config.Farcaster.Channel == "" {
		Config.Farcaster.Channel = "bankr"
	}

	if Config.HealthCheck.IntervalMillis == 0 {
		Config.HealthCheck.IntervalMillis = 60000
	}
}

func validateConfig() {
	if Config.MongoDB.URI == "" {
		log.Fatal("[CONFIG] MongoDB.URI is required")
	}
	if Config.MongoDB.Database == "" {
		log.Fatal("[CONFIG] MongoDB.Database is required")
	}
	if Config.Payment.TreasuryAddress == "" {
		log.Fatal("[CONFIG] Payment.TreasuryAddress is required")
	}
	if Config.Auth.ReceiptSecret == "" {
		log.Fatal("[CONFIG] Auth.ReceiptSecret is required")
	}
	if Config.ENS.MirrorEnabled && Config.ENS.SigningKey == "" {
		log.Fatal("[CONFIG] ENS.SigningKey is required when the mirror is enabled")
	}
}
