package archivist

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// errStillPending signals the backoff loop to read again.
var errStillPending = errors.New("confirmation pending")

// newPollBackOff returns the schedule used between confirmation reads.
func (c *Client) newPollBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.config.PollInitialInterval
	b.MaxInterval = c.config.PollMaxInterval
	b.MaxElapsedTime = c.config.ConfirmTimeout
	b.Reset()
	return backoff.WithContext(b, ctx)
}

// waitForConfirmation blocks until record is CONFIRMED. A record that is
// already CONFIRMED is returned without any request. Retryable read errors
// (5xx and transport failures) are polled through until ConfirmTimeout;
// any other read error ends the wait and is returned unchanged.
func waitForConfirmation[T ~map[string]any](ctx context.Context, e *endpoint[T], record T) (T, error) {
	op := e.label + ".confirm"
	identity := identityOf(record)
	if identity == "" {
		return nil, &Error{Op: op, Err: ErrConfirmation, Msg: "record has no identity"}
	}

	switch statusOf(record) {
	case StatusConfirmed:
		return record, nil
	case StatusFailed:
		return nil, &Error{Op: op, Err: ErrConfirmation, Msg: identity + " has status FAILED"}
	}

	logger := e.client.logger.With("identity", identity)
	start := time.Now()
	polls := 0
	latest := record
	var readErr error

	operation := func() error {
		polls++
		current, err := e.read(ctx, identity)
		if err != nil {
			if IsRetryable(err) {
				readErr = err
				logger.Debug("confirmation read failed, retrying", "error", err, "poll", polls)
				return err
			}
			return backoff.Permanent(err)
		}
		latest = current
		readErr = nil

		status := statusOf(current)
		logger.Debug("polled confirmation status", "status", status, "poll", polls)

		switch status {
		case StatusConfirmed:
			return nil
		case StatusFailed:
			return backoff.Permanent(&Error{Op: op, Err: ErrConfirmation, Msg: identity + " has status FAILED"})
		default:
			return errStillPending
		}
	}

	err := backoff.RetryNotify(operation, e.client.newPollBackOff(ctx), func(_ error, wait time.Duration) {
		logger.Trace("waiting for confirmation", "wait", wait)
	})
	switch {
	case err == nil:
		logger.Info("record confirmed", "polls", polls, "elapsed", time.Since(start))
		return latest, nil
	case errors.Is(err, errStillPending):
		logger.Warn("confirmation timed out", "polls", polls, "status", statusOf(latest))
		return nil, &Error{Op: op, Err: ErrTimeout,
			Msg: identity + " still " + string(statusOf(latest)) + " after " + e.client.config.ConfirmTimeout.String()}
	case readErr != nil && ctx.Err() == nil:
		logger.Warn("confirmation timed out", "polls", polls, "error", readErr)
		return nil, &Error{Op: op, Err: ErrTimeout,
			Msg: identity + " unreadable after " + e.client.config.ConfirmTimeout.String() + ": " + readErr.Error()}
	default:
		logger.Error("confirmation failed", "error", err)
		return nil, err
	}
}
