// constants.go

// Package common provides shared functionality and constants for the MediaConverter application.
// This file contains constants used across the application to replace hardcoded strings.
package common

// AppIdentifiers - Constants for application identification
const (
	// AppID is the application identifier
	AppID = "com.mediaconverter.app"

	// AppName is the application name, also used for the APPDATA folder
	AppName = "MediaConverter"

	// AppVersion is overridden at build time with -ldflags
	AppVersion = "1.2.0"
)

// FileNames - Constants for file names
const (
	// FileNameSettings is the name of the configuration file
	FileNameSettings = "settings.conf"

	// FileNameLog is the name of the application log file
	FileNameLog = "mediaconverter_app.log"

	// FileNameFFmpegLog is the name of the helper output log file
	FileNameFFmpegLog = "mediaconverter_ffmpeg.log"

	// FolderNameLog is the name of the log folder
	FolderNameLog = "log"

	// FolderNameTools is the optional bundle subfolder holding helper binaries
	FolderNameTools = "tools"
)

// HelperNames - Base names of the bundled helper executables
const (
	HelperFFmpeg  = "ffmpeg"
	HelperFFprobe = "ffprobe"
)

// EnvironmentKeys - Environment variables read at startup
const (
	// EnvHome overrides the bundle root directory
	EnvHome = "MEDIACONVERTER_HOME"

	// EnvDebug enables debug logging when set to a true value
	EnvDebug = "MEDIACONVERTER_DEBUG"
)

// OperationNames - Constants for operation names used in ErrorContext and OperationError
const (
	OperationConvert    = "Convert"
	OperationBatch      = "BatchConvert"
	OperationProbe      = "Probe"
	OperationRegister   = "RegisterMenu"
	OperationUnregister = "UnregisterMenu"
	OperationLegacy     = "CleanLegacyMenu"
	OperationStartup    = "Startup"
)
