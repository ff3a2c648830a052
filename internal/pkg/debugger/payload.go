package debugger

import (
	"bytes"
	"encoding/json"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogPayload logs a raw generative service reply at debug level, indented when
// it is valid JSON. Nothing is formatted unless debug logging is enabled.
func LogPayload(logger *zap.Logger, msg string, payload string) {
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		return
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(payload), "", "  "); err == nil {
		logger.Debug(msg, zap.String("payload", pretty.String()), zap.Bool("json", true))
		return
	}
	logger.Debug(msg, zap.String("payload", payload), zap.Bool("json", false))
}
