package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// APIListenPortKey is the port where the HTTP interface will listen on
	APIListenPortKey = "API_LISTEN_PORT"
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// ExplorerEndpointKey is the endpoint of the esplora instance used to query utxo liveness
	ExplorerEndpointKey = "EXPLORER_ENDPOINT"
	// ExplorerRequestsPerSecondKey caps the outbound request rate towards the explorer and the other collaborators
	ExplorerRequestsPerSecondKey = "EXPLORER_REQUESTS_PER_SECOND"
	// WalletAddrKey is the address for connecting to the companion wallet daemon
	WalletAddrKey = "WALLET_ADDR"
	// WriteDBAddrKey is the address for connecting to the write database daemon
	WriteDBAddrKey = "WDB_ADDR"
	// WebhookSecretKey is the shared secret used to verify the JWT carried by write database webhooks. Empty disables verification.
	WebhookSecretKey = "WEBHOOK_SECRET"
	// TakeSafetyMarginKey is the buffer in sats added on top of an order cost when checking solvency
	TakeSafetyMarginKey = "TAKE_SAFETY_MARGIN"
	// HTTPTimeoutKey is the timeout in seconds applied to every outbound call towards collaborators
	HTTPTimeoutKey = "HTTP_TIMEOUT"

	// DBBadger ...
	DBBadger = "badger"
	// DBInMemory ...
	DBInMemory = "inmemory"

	// DbLocation ...
	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("bdex-daemon", false)

// InitConfig loads the environment backed configuration, applies the
// defaults, validates it and prepares the datadir.
func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("BDEX")
	vip.AutomaticEnv()

	vip.SetDefault(APIListenPortKey, 9945)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(ExplorerEndpointKey, "http://127.0.0.1:3001")
	vip.SetDefault(ExplorerRequestsPerSecondKey, 10)
	vip.SetDefault(WalletAddrKey, "http://127.0.0.1:5942")
	vip.SetDefault(WriteDBAddrKey, "http://127.0.0.1:5001")
	vip.SetDefault(TakeSafetyMarginKey, 5000)
	vip.SetDefault(HTTPTimeoutKey, 15)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	switch dbType := GetString(DBTypeKey); dbType {
	case DBBadger, DBInMemory:
	default:
		return fmt.Errorf("unsupported db type %s", dbType)
	}

	if GetString(ExplorerEndpointKey) == "" {
		return fmt.Errorf("missing explorer endpoint")
	}
	if GetString(WalletAddrKey) == "" {
		return fmt.Errorf("missing wallet address")
	}
	if GetString(WriteDBAddrKey) == "" {
		return fmt.Errorf("missing write database address")
	}

	if GetInt(ExplorerRequestsPerSecondKey) <= 0 {
		return fmt.Errorf(
			"%s must be a positive integer", ExplorerRequestsPerSecondKey,
		)
	}
	if GetInt(TakeSafetyMarginKey) < 0 {
		return fmt.Errorf("%s must not be negative", TakeSafetyMarginKey)
	}

	return nil
}

func initDatadir() error {
	if GetString(DBTypeKey) != DBBadger {
		return nil
	}
	datadir := GetDatadir()
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
