// Package notify provides storefront.Notifier and storefront.CartCountView
// adapters for environments without a browser page.
package notify

import (
	"sync"

	"go.uber.org/zap"

	"github.com/aokpower/ari-cart/internal/domain/storefront"
)

// Kind is the presentation style of a notification
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindAlert   Kind = "alert"
)

// Notification is one message shown to the shopper
type Notification struct {
	Kind    Kind   `json:"kind"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}

// Recorder keeps notifications in memory in the order they were emitted.
// It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{items: make([]Notification, 0)}
}

func (r *Recorder) add(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// Success records a success toast
func (r *Recorder) Success(msg string) {
	r.add(Notification{Kind: KindSuccess, Message: msg})
}

// Error records an error toast
func (r *Recorder) Error(msg string) {
	r.add(Notification{Kind: KindError, Message: msg})
}

// Alert records a modal alert
func (r *Recorder) Alert(title, msg string) {
	r.add(Notification{Kind: KindAlert, Title: title, Message: msg})
}

// Notifications returns a copy of everything recorded so far
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// LogNotifier writes notifications to a zap logger
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier backed by logger
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger.Named("notify")}
}

// Success logs at info level
func (n *LogNotifier) Success(msg string) {
	n.logger.Info(msg, zap.String("kind", string(KindSuccess)))
}

// Error logs at error level
func (n *LogNotifier) Error(msg string) {
	n.logger.Error(msg, zap.String("kind", string(KindError)))
}

// Alert logs at warn level with the title as the message
func (n *LogNotifier) Alert(title, msg string) {
	n.logger.Warn(title, zap.String("kind", string(KindAlert)), zap.String("body", msg))
}

// Fanout forwards every notification to each notifier in order
type Fanout []storefront.Notifier

// Success forwards to all notifiers
func (f Fanout) Success(msg string) {
	for _, n := range f {
		n.Success(msg)
	}
}

// Error forwards to all notifiers
func (f Fanout) Error(msg string) {
	for _, n := range f {
		n.Error(msg)
	}
}

// Alert forwards to all notifiers
func (f Fanout) Alert(title, msg string) {
	for _, n := range f {
		n.Alert(title, msg)
	}
}

var (
	_ storefront.Notifier = (*Recorder)(nil)
	_ storefront.Notifier = (*LogNotifier)(nil)
	_ storefront.Notifier = Fanout(nil)
)
