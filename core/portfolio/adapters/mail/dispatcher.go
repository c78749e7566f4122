// Copyright 2025 Nhat-Nguyen Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"portfolio/core/portfolio/domain"
	"portfolio/modules/mailer"
	"portfolio/modules/worker"
)

var (
	ErrQueueFull = errors.New("mail: dispatch queue is full")
	ErrStopped   = errors.New("mail: dispatcher is stopped")
)

var _ domain.ContactDispatcher = (*Dispatcher)(nil)

type (
	Sender interface {
		Send(ctx context.Context, m mailer.Message) error
	}

	Config struct {
		QueueSize   int
		Workers     int
		SendTimeout time.Duration

		FromName    string
		FromAddress string
		Recipient   string

		// Live is false when Sender only logs.
		Live bool
	}

	// Dispatcher queues contact messages and delivers them from a fixed set of
	// workers. Delivery failures are logged and never retried.
	Dispatcher struct {
		cfg    Config
		sender Sender
		queue  chan domain.ContactMessage

		mu     sync.RWMutex
		closed bool

		start  sync.Once
		runCtx context.Context
		cancel context.CancelFunc
		done   chan struct{}
	}
)

func NewDispatcher(sender Sender, cfg Config) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		cfg:    cfg,
		sender: sender,
		queue:  make(chan domain.ContactMessage, cfg.QueueSize),
		runCtx: ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Start launches the workers. Calling it more than once has no effect.
func (d *Dispatcher) Start() {
	d.start.Do(func() {
		go func() {
			defer close(d.done)
			worker.BlockingPool(d.runCtx, d.cfg.Workers, d.queue, d.deliver)
		}()
	})
}

// Dispatch enqueues msg without waiting for delivery.
func (d *Dispatcher) Dispatch(_ context.Context, msg domain.ContactMessage) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrStopped
	}
	select {
	case d.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) Live() bool {
	return d.cfg.Live
}

// Shutdown stops accepting messages and waits for queued ones to be delivered.
// If ctx ends first, in-flight sends are cancelled and the rest are dropped.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	// Workers that never started have nothing to drain.
	d.Start()

	select {
	case <-d.done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-d.done
		if n := len(d.queue); n > 0 {
			slog.WarnContext(ctx, "contact messages dropped on shutdown", slog.Int("count", n))
		}
		return ctx.Err()
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg domain.ContactMessage) {
	if d.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.SendTimeout)
		defer cancel()
	}

	receipt := slog.String("receipt", msg.ID.String())
	if err := d.sender.Send(ctx, d.compose(msg)); err != nil {
		slog.ErrorContext(ctx, "contact delivery failed", receipt, slog.Any("error", err))
		return
	}
	slog.InfoContext(ctx, "contact delivered", receipt, slog.Bool("live", d.cfg.Live))
}

func (d *Dispatcher) compose(msg domain.ContactMessage) mailer.Message {
	subject := msg.Subject
	if subject == "" {
		subject = "-"
	}

	var b strings.Builder
	b.WriteString("New message from the portfolio contact form.\n\n")
	fmt.Fprintf(&b, "Receipt:  %s\n", msg.ID)
	fmt.Fprintf(&b, "Received: %s\n", msg.ReceivedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Name:     %s\n", msg.Name)
	fmt.Fprintf(&b, "Email:    %s\n", msg.Email)
	fmt.Fprintf(&b, "Subject:  %s\n\n", subject)
	b.WriteString(msg.Message)
	b.WriteString("\n")

	return mailer.Message{
		FromName:    d.cfg.FromName,
		FromAddress: d.cfg.FromAddress,
		To:          d.cfg.Recipient,
		ReplyTo:     msg.Email,
		Subject:     msg.MailSubject(),
		Body:        b.String(),
	}
}
