package notifications

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Ntfy posts a short text message to a topic URL whenever a book is
// created. When disabled it is a no-op.
type Ntfy struct {
	logger  *zap.Logger
	baseURL string
	enabled bool
	client  *http.Client
}

func NewNtfy(logger *zap.Logger, enabled bool, baseURL string) *Ntfy {
	return &Ntfy{
		logger:  logger,
		baseURL: baseURL,
		enabled: enabled,
		client:  &http.Client{},
	}
}

type ErrNotificationFailed struct {
	statusCode int
}

func (e ErrNotificationFailed) Error() string {
	return fmt.Sprintf("ntfy wrong response - want: 200 OK, got: %d", e.statusCode)
}

func NewErrNotificationFailed(statusCode int) ErrNotificationFailed {
	return ErrNotificationFailed{statusCode: statusCode}
}

func (ntf *Ntfy) BookCreated(ctx context.Context, title, author string) error {
	if !ntf.enabled {
		return nil
	}

	message := fmt.Sprintf("New book created:\nTitle: %s\nAuthor: %s", title, author)
	topicURL := ntf.baseURL + "/book_created"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, topicURL, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("delivering message to topic (%s): %w", topicURL, err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := ntf.client.Do(req)
	if err != nil {
		return fmt.Errorf("delivering message to topic (%s): %w", topicURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewErrNotificationFailed(resp.StatusCode)
	}

	ntf.logger.Debug("book created notification delivered", zap.String("topic", topicURL))
	return nil
}
