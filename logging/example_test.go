package logging_test

import (
	"github.com/lectern/lectern/logging"
	"github.com/sirupsen/logrus"
)

func ExampleNewLogger() {
	// Create a logger for your component
	log := logging.NewLogger("my-component")

	// Use it for various log levels
	log.Debug("Debug information")
	log.Info("Starting process")
	log.Warn("Resource usage high")
	log.Error("Connection failed")

	// Add structured fields
	log.WithFields(logrus.Fields{
		"page":    "notes/01_intro.md",
		"section": "module-1",
	}).Info("Page rendered")

	// Use WithField for single fields
	log.WithField("file", "content/welcome.md").Info("Processing file")

	// Use WithError for errors
	// err := someFunction()
	// log.WithError(err).Error("Operation failed")
}

func ExampleNewLogger_configuration() {
	// Configuration via course.yml:
	//
	// logging:
	//   level: debug              # Set log level
	//   report_caller: true       # Include file/line info
	//   file:
	//     enabled: true
	//     path: /var/log/lectern/site.log
	//   format:
	//     preset: json           # Use JSON output format

	// Or via environment variables:
	// LECTERN_LOG_LEVEL=debug
	// LECTERN_LOG_CALLER=true

	log := logging.NewLogger("configured-app")
	log.Info("This will respect the configuration")
}

func ExampleNewLogger_multipleComponents() {
	// Different components can have their own loggers
	// but they share the same configuration

	buildLog := logging.NewLogger("build")
	serveLog := logging.NewLogger("serve")
	checkLog := logging.NewLogger("check")

	// Each log entry will be tagged with its component
	buildLog.Info("Rendered 42 pages")
	serveLog.Info("Server started on port 1313")
	checkLog.Warn("Duplicate exercise number")

	// Output will show:
	// [INFO] [build] Rendered 42 pages
	// [INFO] [serve] Server started on port 1313
	// [WARN] [check] Duplicate exercise number
}
