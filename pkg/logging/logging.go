package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	configFile   = "log-config.json"
	levelEnvVar  = "LOG_LEVEL"
	defaultLevel = "info"
)

var RootLogger zerolog.Logger
var lvls map[string]string
var loggers = map[string]zerolog.Logger{}

// findUp looks for name in the working directory and a few parents, since tests run
// from inside the package directory
func findUp(name string) (string, bool) {
	dots := "."
	for i := 0; i < 5; i++ {
		filename := dots + "/" + name
		if _, err := os.Stat(filename); err == nil {
			return filename, true
		}
		dots = dots + "/.."
	}
	return "", false
}

// the module is a library: a missing or broken config must not stop whoever imports it
func readLevels() map[string]string {
	config := map[string]string{"root": defaultLevel}

	if filename, ok := findUp(configFile); ok {
		data, err := os.ReadFile(filename)
		if err == nil {
			err = json.Unmarshal(data, &config)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "ignoring %s: %v\n", filename, err)
			config = map[string]string{"root": defaultLevel}
		}
	}

	// the environment wins over .env, which is only read, never loaded into the process
	level := os.Getenv(levelEnvVar)
	if level == "" {
		if filename, ok := findUp(".env"); ok {
			if vars, err := godotenv.Read(filename); err == nil {
				level = vars[levelEnvVar]
			}
		}
	}
	if level != "" {
		config["root"] = level
	}
	if _, ok := config["root"]; !ok {
		config["root"] = defaultLevel
	}
	return config
}

func setupLog(out io.Writer) {
	lvls = readLevels()
	loggers = map[string]zerolog.Logger{}

	// https://github.com/rs/zerolog
	zerolog.TimeFieldFormat = time.RFC3339Nano
	output := zerolog.ConsoleWriter{
		Out:           out,
		TimeFormat:    "2006-01-02T15:04:05.000",
		PartsOrder:    []string{"time", "level", "component", "message"},
		FieldsExclude: []string{"component"},
	}
	output.FormatLevel = func(i any) string {
		if i == nil {
			return "|      |"
		}
		s := strings.ToUpper(fmt.Sprintf("%s", i))

		color := COLOR_NONE
		if s == "WARN" {
			color = COLOR_RED
		} else if s == "ERROR" || s == "FATAL" || s == "PANIC" {
			color = COLOR_LIGHT_RED
		}
		return "|" + color + fmt.Sprintf("%-6s", s) + COLOR_NONE + "|"
	}
	output.FormatMessage = func(i any) string {
		return fmt.Sprintf("| %s ", i)
	}
	output.FormatFieldName = func(i any) string {
		return fmt.Sprintf("%s:", i)
	}
	output.FormatFieldValue = func(i any) string {
		if i == nil {
			return "| -"
		}
		s := fmt.Sprintf("%s", i)
		if strings.HasPrefix(s, "pkg:") {
			return abbreviateIfNecessary(s[4:])
		}
		return s
	}

	RootLogger = zerolog.New(output).With().Timestamp().Str("component", "pkg:root").Logger()
}

const MAX_LENGTH = 20

func abbreviateIfNecessary(s string) string {
	if len(s) == MAX_LENGTH {
		return s
	} else if len(s) < MAX_LENGTH {
		return s + strings.Repeat(" ", MAX_LENGTH-len(s)) // Right pad with spaces
	} else {
		return s[:8] + ".." // Abbreviate with ".."
	}
}

// GetLog returns the logger for a component, with the level configured for it or
// the root level.
func GetLog(component string) zerolog.Logger {
	component = shortenString(component)
	if lvls == nil {
		setupLog(os.Stdout)
	}
	l, ok := loggers[component]
	if !ok {
		level, ok := lvls[component]
		if !ok {
			level = lvls["root"]
		}
		l = RootLogger.With().Str("component", "pkg:"+component).Logger()
		lvl, err := zerolog.ParseLevel(level)
		if err != nil {
			panic(fmt.Sprintf("unknown level '%s' in log config", level))
		}
		l = l.Level(lvl)
		loggers[component] = l
	}
	return l
}

func shortenString(fullPackage string) string {
	parts := strings.Split(fullPackage, "/")
	shortenedParts := make([]string, 0, len(parts))
	for i, part := range parts {
		if i < len(parts)-1 && len(part) > 0 {
			shortenedParts = append(shortenedParts, string(part[0]))
		} else {
			shortenedParts = append(shortenedParts, part)
		}
	}
	return strings.Join(shortenedParts, ".")
}

// https://unix.stackexchange.com/a/174/206459
const (
	COLOR_NONE      = "\033[0m"
	COLOR_RED       = "\033[0;31m"
	COLOR_LIGHT_RED = "\033[1;31m"
)
