package assistant

import (
	"context"
	"strings"

	pkgerrors "github.com/ecofinds/ecofinds-backend/pkg/errors"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
)

const maxMessageLen = 2000

// MessageReplyDTO is the classified intent plus the bot's reply.
type MessageReplyDTO struct {
	Intent string `json:"intent"`
	Reply  string `json:"reply"`
}

// Service answers shopper messages.
type Service interface {
	HandleMessage(ctx context.Context, message string) (*MessageReplyDTO, error)
}

type service struct {
	logg *logger.Logger
}

// NewService builds the assistant service. The logger is optional.
func NewService(logg *logger.Logger) Service {
	return &service{logg: logg}
}

func (s *service) HandleMessage(ctx context.Context, message string) (*MessageReplyDTO, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}
	if len(trimmed) > maxMessageLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message too long")
	}

	intent := Classify(trimmed)
	if s.logg != nil {
		logCtx := s.logg.WithField(ctx, "intent", intent.String())
		s.logg.Info(logCtx, "assistant message classified")
	}

	return &MessageReplyDTO{
		Intent: intent.String(),
		Reply:  ReplyFor(intent),
	}, nil
}
