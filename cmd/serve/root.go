package serve

import (
	cmdUtil "github.com/miyamoto-hai-lab/participants-id/cmd/util"
	"github.com/miyamoto-hai-lab/participants-id/rpc/common"
	"github.com/miyamoto-hai-lab/participants-id/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the participants-id storage server",
		Long:    `Start the participants-id storage server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is PID_<flag> (e.g. PID_LOG_LEVEL=debug)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(cmdUtil.InitConfig)

	// add flags
	key := "engine"
	ServeCmd.PersistentFlags().String(key, "memory", cmdUtil.WrapString("Storage engine backing the server (memory, file)"))

	key = "data-file"
	ServeCmd.PersistentFlags().String(key, "participants-id.json", cmdUtil.WrapString("Snapshot path for the file engine (ignored for memory)"))

	key = "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the API will listen (e.g. localhost:8080)"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Request timeout in seconds"))

	key = "metrics"
	ServeCmd.PersistentFlags().Bool(key, false, cmdUtil.WrapString("Expose Prometheus metrics on GET /metrics"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Engine = viper.GetString("engine")
	serveCmdConfig.DataFile = viper.GetString("data-file")
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.MetricsEnabled = viper.GetBool("metrics")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	// configure the loggers before any component starts logging
	common.InitLoggers(serveCmdConfig.LogLevel)

	return nil
}

// run starts the storage server
func run(_ *cobra.Command, _ []string) error {

	// parse the serializer
	s, err := cmdUtil.GetSerializer()
	if err != nil {
		return err
	}

	// parse the transport
	t, err := cmdUtil.GetServerTransport()
	if err != nil {
		return err
	}

	serv, err := server.NewRPCServer(
		*serveCmdConfig,
		t,
		s,
	)
	if err != nil {
		return err
	}

	return serv.Serve()
}
