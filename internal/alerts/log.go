package alerts

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogSender sends alerts to the logger.
type LogSender struct {
	log *logrus.Logger
}

// NewLogSender creates a new log sender.
func NewLogSender(log *logrus.Logger) *LogSender {
	return &LogSender{log: log}
}

// Send logs the alert.
func (s *LogSender) Send(ctx context.Context, payload *AlertPayload) error {
	s.log.WithFields(logrus.Fields{
		"entity":       payload.DisplayName,
		"wallet":       payload.ActorShort,
		"action":       payload.Action,
		"event_type":   payload.EventType,
		"native_delta": payload.NativeDelta,
		"stable_delta": payload.StableDelta,
		"score":        payload.Score,
		"escalate":     payload.Escalate,
		"tx":           payload.SigShort,
	}).Info("Alert generated")
	return nil
}
