package application

import (
	"context"
	"errors"
	"fmt"

	"album-uploader/internal/domain"
	"album-uploader/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Transitioner is the state machine driven by UpdateProcessor
type Transitioner interface {
	Transition(ctx context.Context, session domain.Session, update domain.Update) (domain.Session, []domain.Effect)
}

// UpdateProcessor struct - Runs one update through the state machine under
// the chat lock: load session, transition, store, execute effects.
type UpdateProcessor struct {
	store     output.SessionStore
	engine    Transitioner
	transport output.ChatTransport
}

// NewUpdateProcessor func - Creates new update processor
func NewUpdateProcessor(store output.SessionStore, engine Transitioner, transport output.ChatTransport) *UpdateProcessor {
	return &UpdateProcessor{
		store:     store,
		engine:    engine,
		transport: transport,
	}
}

// Process handles one update. The chat lock is held for the whole transition,
// including collaborator calls and chat effects.
func (p *UpdateProcessor) Process(ctx context.Context, update domain.Update) error {
	return p.store.WithLock(update.ChatID, func() error {
		session := p.store.Get(update.ChatID)
		next, effects := p.engine.Transition(ctx, session, update)
		p.store.Put(next)

		logrus.WithFields(logrus.Fields{
			"update_id":    update.ID,
			"chat_id":      update.ChatID,
			"kind":         update.Kind,
			"phase_before": session.Phase,
			"phase_after":  next.Phase,
			"effects":      len(effects),
		}).Info("Update processed")

		return p.execute(ctx, effects)
	})
}

// execute - Runs every effect in order; a failed effect does not stop the rest
func (p *UpdateProcessor) execute(ctx context.Context, effects []domain.Effect) error {
	var errs []error
	for _, effect := range effects {
		var err error
		switch effect.Kind {
		case domain.EffectKindSendMessage:
			err = p.transport.SendMessage(ctx, effect.ChatID, effect.Text, effect.Options)
		case domain.EffectKindAnswerCallback:
			err = p.transport.AnswerCallback(ctx, effect.QueryID, effect.Text, effect.Alert)
		default:
			err = fmt.Errorf("unknown effect kind %q", effect.Kind)
		}
		if err != nil {
			logrus.WithError(err).WithField("effect", effect.Kind).Error("Failed to execute effect")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
