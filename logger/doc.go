// Package logger provides structured logging for the storyeval pipelines,
// built on zerolog. Batch drivers and provider clients obtain component-tagged
// loggers via WithComponent; output defaults to stderr so stdout stays free
// for piped report data.
package logger
