package util

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/miyamoto-hai-lab/participants-id/lib/idgen"
	"github.com/miyamoto-hai-lab/participants-id/lib/participant"
	"github.com/miyamoto-hai-lab/participants-id/lib/storage"
	"github.com/miyamoto-hai-lab/participants-id/lib/storage/filestore"
	"github.com/miyamoto-hai-lab/participants-id/lib/storage/memstore"
	"github.com/miyamoto-hai-lab/participants-id/rpc/client"
	"github.com/miyamoto-hai-lab/participants-id/rpc/common"
	"github.com/miyamoto-hai-lab/participants-id/rpc/serializer"
	"github.com/miyamoto-hai-lab/participants-id/rpc/transport"
	"github.com/miyamoto-hai-lab/participants-id/rpc/transport/http"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupStorageFlags adds the storage selection flags to a command
func SetupStorageFlags(cmd *cobra.Command) {
	key := "storage"
	cmd.PersistentFlags().String(key, "file", WrapString("Storage engine to use (memory, file, remote)"))

	key = "data-file"
	cmd.PersistentFlags().String(key, "participants-id.json", WrapString("Snapshot path for the file engine"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds of the RPC client (remote engine only)"))

	key = "transport-endpoints"
	cmd.PersistentFlags().String(key, "http://localhost:8080", WrapString("The address of the storage server. Multiple endpoints can be specified as a comma-separated list (remote engine only)"))

	key = "transport-retries"
	cmd.PersistentFlags().Int(key, 3, WrapString("How many times to retry a request (remote engine only)"))
}

// SetupParticipantFlags adds the participant manager flags to a command
func SetupParticipantFlags(cmd *cobra.Command) {
	key := "prefix"
	cmd.PersistentFlags().String(key, participant.DefaultPrefix, WrapString("Storage key prefix isolating the identifier namespace"))

	key = "app-name"
	cmd.PersistentFlags().String(key, "cli", WrapString("Application name namespacing the attribute keys"))

	key = "id-scheme"
	cmd.PersistentFlags().String(key, string(idgen.SchemeUUIDv7), WrapString("Identifier generation scheme (uuidv7, uuidv4)"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("pid")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads the RPC client configuration from viper
func GetClientConfig() *common.ClientConfig {
	return &common.ClientConfig{
		TimeoutSecond: viper.GetInt("timeout"),
		RetryCount:    viper.GetInt("transport-retries"),
		Endpoints:     strings.Split(viper.GetString("transport-endpoints"), ","),
	}
}

// GetSerializer creates a serializer based on configuration
func GetSerializer() (serializer.IRPCSerializer, error) {
	switch viper.GetString("serializer") {
	case "json":
		return serializer.NewJSONSerializer(), nil
	case "gob":
		return serializer.NewGOBSerializer(), nil
	default:
		return nil, fmt.Errorf("invalid serializer %s", viper.GetString("serializer"))
	}
}

// GetClientTransport creates a client transport based on configuration
func GetClientTransport() (transport.IRPCClientTransport, error) {
	switch viper.GetString("transport") {
	case "http":
		return http.NewHttpClientTransport(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}
}

// GetServerTransport creates a server transport based on configuration
func GetServerTransport() (transport.IRPCServerTransport, error) {
	switch viper.GetString("transport") {
	case "http":
		return http.NewHttpServerTransport(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}
}

// GetStorage creates the storage engine selected by configuration
func GetStorage() (storage.IStorage, error) {
	switch viper.GetString("storage") {
	case string(storage.EngineMemory):
		return memstore.NewMemoryStorage(), nil
	case string(storage.EngineFile):
		return filestore.NewFileStorage(viper.GetString("data-file"))
	case string(storage.EngineRemote):
		s, err := GetSerializer()
		if err != nil {
			return nil, err
		}
		t, err := GetClientTransport()
		if err != nil {
			return nil, err
		}
		return client.NewRPCStorage(*GetClientConfig(), t, s)
	default:
		return nil, fmt.Errorf("invalid storage engine %s (expected one of: memory, file, remote)", viper.GetString("storage"))
	}
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
