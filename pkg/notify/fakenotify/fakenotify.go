package fakenotify

import (
	"context"
	"sync"

	"carleadbot/pkg/ports/notifyport"
)

// FakeNotifier implements notifyport.Notifier for headless tests.
type FakeNotifier struct {
	mu       sync.Mutex
	Sent     []Notification
	failNext error
}

// Notification captures one Send invocation.
type Notification struct {
	Subject string
	Body    string
}

var _ notifyport.Notifier = (*FakeNotifier)(nil)

func (f *FakeNotifier) Send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	f.Sent = append(f.Sent, Notification{Subject: subject, Body: body})
	return nil
}

// Fail makes the next Send return err.
func (f *FakeNotifier) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext = err
}

// Last returns the most recent notification, or nil when none was sent.
func (f *FakeNotifier) Last() *Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Sent) == 0 {
		return nil
	}
	n := f.Sent[len(f.Sent)-1]
	return &n
}

// FakeFetcher implements notifyport.Fetcher with a scripted document.
type FakeFetcher struct {
	mu   sync.Mutex
	Text string
	Err  error
	URLs []string
}

var _ notifyport.Fetcher = (*FakeFetcher)(nil)

func (f *FakeFetcher) FetchText(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.URLs = append(f.URLs, url)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Text, nil
}

// FakeAppLogger implements notifyport.AppLogger in memory.
type FakeAppLogger struct {
	mu      sync.Mutex
	Records []notifyport.Record
}

var _ notifyport.AppLogger = (*FakeAppLogger)(nil)

func (f *FakeAppLogger) Append(ctx context.Context, rec notifyport.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Records = append(f.Records, rec)
	return nil
}
