package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"counterpart.dev/pkg/counterpart/internal/adapter"
	"counterpart.dev/pkg/counterpart/internal/domain"
	m "counterpart.dev/pkg/counterpart/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "counterpart"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	rootFlagName       = "root"
	excludeFlagName    = "exclude"
	conventionFlagName = "convention"
	anywhereFlagName   = "anywhere"
	editorFlagName     = "editor"
	parallelFlagName   = "parallel"
	logFlagName        = "log"
	verboseFlagName    = "verbose"

	conventionKey     = "convention"
	rootMarkerKey     = "root_marker"
	extensionsKey     = "extensions"
	excludeConfigKey  = "paths.exclude"
	anywhereKey       = "search.anywhere"
	modulePatternKey  = "stub.module_pattern"
	testTemplateKey   = "stub.test_template"
	implTemplateKey   = "stub.impl_template"
	editorCommandKey  = "editor.command"
	listParallelKey   = "list.parallel"
	defaultRootMarker = "mix.exs"
	defaultParallel   = 4

	envPrefix = "COUNTERPART"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var defaultLogFilename = filepath.Join(os.TempDir(), "counterpart.log")

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(conventionKey, string(m.ConventionUnderscore))
	viper.SetDefault(rootMarkerKey, defaultRootMarker)
	viper.SetDefault(extensionsKey, domain.DefaultExtensions)
	viper.SetDefault(excludeConfigKey, adapter.DefaultExcludes)
	viper.SetDefault(anywhereKey, false)
	viper.SetDefault(modulePatternKey, domain.DefaultModulePattern)
	viper.SetDefault(testTemplateKey, domain.DefaultTestTemplate)
	viper.SetDefault(implTemplateKey, domain.DefaultImplTemplate)
	viper.SetDefault(editorCommandKey, "")
	viper.SetDefault(listParallelKey, defaultParallel)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// parseConvention maps a config value to a naming convention, falling back
// to the underscore style.
func parseConvention(value string) m.Convention {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(m.ConventionSuffix), "dot":
		return m.ConventionSuffix
	default:
		return m.ConventionUnderscore
	}
}

// configureLogger configures the global slog logger.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
