package jsonconfig

// The jsonconfig package provides support for reading and using a JSON
// configuration file for the rinexcn0 tool.
//
// An example config file:
//
//	{
//		"log_events": true,
//		"event_log_directory": "logs",
//		"output_directory": "cn0",
//		"verbose": false
//	}
//
// All the settings are optional and the zero value of Config is a valid
// configuration: no event log file (warnings and errors go to stderr), the
// output file is written in the current directory and the header is not
// displayed.

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/goblimey/go-rinex-cn0/rinex/utils"
)

// DefaultEventLogDirectory is used when events are logged but no directory
// is given.
const DefaultEventLogDirectory = "logs"

// Config contains the values from the JSON config file.
type Config struct {
	// LogEvents enables the daily event log file.
	LogEvents bool `json:"log_events"`

	// EventLogDirectory is the directory for the event log.
	EventLogDirectory string `json:"event_log_directory"`

	// OutputDirectory is where the output file is written when no output
	// file name is given.  Empty means the current directory.
	OutputDirectory string `json:"output_directory"`

	// Verbose causes the decoded RINEX header to be displayed.
	Verbose bool `json:"verbose"`
}

// GetJSONConfigFromFile gets the config from the file given by configFileName.
func GetJSONConfigFromFile(configFileName string, systemLog *slog.Logger) (*Config, error) {

	jsonReader, fileErr := os.Open(configFileName)
	if fileErr != nil {
		systemLog.Error("cannot open the JSON config file", "file", configFileName,
			"error", fileErr.Error())
		return nil, fileErr
	}
	defer jsonReader.Close()

	// There is a JSON config file.  Read and unmarshall it.
	config, jsonError := getJSONConfig(jsonReader, systemLog)
	if jsonError != nil {
		return nil, jsonError
	}

	return config, nil
}

// getJSONConfig reads from the given source and returns the config.
func getJSONConfig(jsonSource io.Reader, systemLog *slog.Logger) (*Config, error) {

	jsonBytes, jsonReadError := io.ReadAll(jsonSource)
	if jsonReadError != nil {
		// We can't read the config file - permissions?
		systemLog.Error("cannot read the JSON config file", "error", jsonReadError.Error())
		return nil, jsonReadError
	}

	var config Config
	jsonParseError := json.Unmarshal(jsonBytes, &config)
	if jsonParseError != nil {
		systemLog.Error("cannot parse the JSON config file", "error", jsonParseError.Error())
		return nil, jsonParseError
	}

	return &config, nil
}

// EventLogger returns the logger for runtime events.  If events are logged,
// it writes everything from Info level up to a daily log file in the event
// log directory.  Otherwise it writes warnings and errors to stderrWriter.
func (config *Config) EventLogger(appName string, stderrWriter io.Writer) *slog.Logger {
	if !config.LogEvents {
		options := slog.HandlerOptions{Level: slog.LevelWarn}
		return slog.New(slog.NewTextHandler(stderrWriter, &options))
	}

	directory := config.EventLogDirectory
	if len(directory) == 0 {
		directory = DefaultEventLogDirectory
	}

	return utils.GetDailyLogger(directory, appName)
}
