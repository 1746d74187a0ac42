package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// RelayResult counts the outcome of one relay run.
type RelayResult struct {
	Sent   int
	Failed int
}

// RelayOutboxCommandHandler delivers committed notifications. Messages are locked for the
// duration of the run, so concurrent relays never pick the same message; a message whose
// dispatch fails stays pending and is retried on the next run. Dispatch failures are
// counted, not returned: they never affect the state change that produced the message.
type RelayOutboxCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.NotificationDispatcher
	clock      Clock
}

func NewRelayOutboxCommandHandler(
	uowFactory UoWFactory, dispatcher ports.NotificationDispatcher, clock Clock,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (RelayResult, error) {
	if err := cmd.Validate(); err != nil {
		return RelayResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RelayResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()
	messages, err := outboxRepo.GetPendingForUpdate(ctx, cmd.BatchSize())
	if err != nil {
		return RelayResult{}, err
	}
	if len(messages) == 0 {
		return RelayResult{}, nil
	}

	var result RelayResult
	for _, message := range messages {
		notifyErr := h.dispatcher.Notify(ctx, ports.Notification{
			ID:          message.ID,
			RecipientID: message.RecipientID,
			Kind:        string(message.Kind),
			Payload:     message.Payload,
			CreatedAt:   message.CreatedAt,
		})
		if notifyErr != nil {
			message.MarkFailed(notifyErr)
			result.Failed++
		} else {
			message.MarkSent(h.clock())
			result.Sent++
		}

		if err = outboxRepo.Update(ctx, message); err != nil {
			return RelayResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return RelayResult{}, err
	}

	return result, nil
}
