package intent

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// RawClassifier returns the classifier's JSON output for one utterance.
type RawClassifier interface {
	ClassifyRaw(ctx context.Context, utterance string) (string, error)
}

type Classifier struct {
	raw RawClassifier
	log *zap.Logger
}

func NewClassifier(raw RawClassifier, log *zap.Logger) *Classifier {
	return &Classifier{raw: raw, log: log.Named("classifier")}
}

func (c *Classifier) Classify(ctx context.Context, utterance string) (Envelope, error) {
	out, err := c.raw.ClassifyRaw(ctx, utterance)
	if err != nil {
		return Envelope{}, fmt.Errorf("classify utterance: %w", err)
	}

	env, err := Parse([]byte(out))
	if err != nil {
		c.log.Warn("classifier returned an invalid envelope",
			zap.String("raw", out),
			zap.Error(err),
		)
		return Envelope{}, err
	}

	for _, w := range env.Warnings {
		c.log.Warn("optional field discarded", zap.String("intent", env.Label), zap.String("detail", w))
	}

	c.log.Debug("utterance classified",
		zap.String("intent", env.Label),
		zap.String("kind", string(env.Kind)),
	)
	return env, nil
}
