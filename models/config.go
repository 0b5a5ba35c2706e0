package models

type Config struct {
	GoogleSecretManager GoogleSecretManagerConfig `yaml:"google_secret_manager" json:"google_secret_manager"`
	Logger              LoggerConfig              `yaml:"logger" json:"logger"`
	MongoDB             MongoConfig               `yaml:"mongodb" json:"mongo_db"`
	Server              ServerConfig              `yaml:"server" json:"server"`
	Base                ChainConfig               `yaml:"base" json:"base"`
	Mainnet             ChainConfig               `yaml:"mainnet" json:"mainnet"`
	ENS                 ENSConfig                 `yaml:"ens" json:"ens"`
	Gate                GateConfig                `yaml:"gate" json:"gate"`
	Pricing             PricingConfig             `yaml:"pricing" json:"pricing"`
	Payment             PaymentConfig             `yaml:"payment" json:"payment"`
	Auth                AuthConfig                `yaml:"auth" json:"auth"`
	Bankr               BankrConfig               `yaml:"bankr" json:"bankr"`
	Farcaster           FarcasterConfig           `yaml:"farcaster" json:"farcaster"`
	HealthCheck         HealthCheckConfig         `yaml:"health_check" json:"health_check"`
}

type GoogleSecretManagerConfig struct {
	Enabled              bool   `yaml:"enabled" json:"enabled"`
	ProjectId            string `yaml:"project_id" json:"project_id"`
	SigningKeySecretName string `yaml:"signing_key_secret_name" json:"signing_key_secret_name"`
	ReceiptSecretName    string `yaml:"receipt_secret_name" json:"receipt_secret_name"`
	PartnerKeySecretName string `yaml:"partner_key_secret_name" json:"partner_key_secret_name"`
	NeynarKeySecretName  string `yaml:"neynar_key_secret_name" json:"neynar_key_secret_name"`
}

type LoggerConfig struct {
	Level string `yaml:"level" json:"level"`
}

type MongoConfig struct {
	URI           string `yaml:"uri" json:"uri"`
	Database      string `yaml:"database" json:"database"`
	TimeoutMillis int64  `yaml:"timeout_ms" json:"timeout_ms"`
}

type ServerConfig struct {
	Port int64 `yaml:"port" json:"port"`
}

type ChainConfig struct {
	RPCURL           string `yaml:"rpc_url" json:"rpcurl"`
	ChainID          string `yaml:"chain_id" json:"chain_id"`
	RPCTimeoutMillis int64  `yaml:"rpc_timeout_ms" json:"rpc_timeout_ms"`
}

type ENSConfig struct {
	Domain             string `yaml:"domain" json:"domain"`
	NameWrapperAddress string `yaml:"name_wrapper_address" json:"name_wrapper_address"`
	ResolverAddress    string `yaml:"resolver_address" json:"resolver_address"`
	ParentExpiry       int64  `yaml:"parent_expiry" json:"parent_expiry"`
	SigningKey         string `yaml:"signing_key" json:"signing_key"`
	MirrorEnabled      bool   `yaml:"mirror_enabled" json:"mirror_enabled"`
}

type GateConfig struct {
	NFTAddress string `yaml:"nft_address" json:"nft_address"`
}

type PricingConfig struct {
	FreeMinLength int               `yaml:"free_min_length" json:"free_min_length"`
	ReservedNames []string          `yaml:"reserved_names" json:"reserved_names"`
	PriceSchedule map[int]string    `yaml:"price_schedule" json:"price_schedule"`
	Discounts     map[string]string `yaml:"discounts" json:"discounts"`
}

type PaymentConfig struct {
	TreasuryAddress  string            `yaml:"treasury_address" json:"treasury_address"`
	TokenAddresses   map[string]string `yaml:"token_addresses" json:"token_addresses"`
	TolerancePercent int64             `yaml:"tolerance_percent" json:"tolerance_percent"`
	OracleURL        string            `yaml:"oracle_url" json:"oracle_url"`
}

type AuthConfig struct {
	ReceiptSecret string `yaml:"receipt_secret" json:"receipt_secret"`
	NonceTTLSecs  int64  `yaml:"nonce_ttl_secs" json:"nonce_ttl_secs"`
}

type BankrConfig struct {
	APIURL      string `yaml:"api_url" json:"api_url"`
	PartnerKey  string `yaml:"partner_key" json:"partner_key"`
	TimeoutSecs int64  `yaml:"timeout_secs" json:"timeout_secs"`
}

type FarcasterConfig struct {
	NeynarAPIKey string `yaml:"neynar_api_key" json:"neynar_api_key"`
	SignerUUID   string `yaml:"signer_uuid" json:"signer_uuid"`
	Channel      string `yaml:"channel" json:"channel"`
}

type HealthCheckConfig struct {
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
}
