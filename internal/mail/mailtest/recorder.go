// Package mailtest provides an in-memory mail.Sender for tests.
package mailtest

import (
	"context"
	"html"
	"regexp"
	"sync"

	"github.com/Skotchmaster/bookly/internal/mail"
)

var hrefRe = regexp.MustCompile(`href="([^"]+)"`)

type Recorder struct {
	mu   sync.Mutex
	sent []mail.Message
	Err  error
}

func (r *Recorder) Send(_ context.Context, msg mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *Recorder) Sent() []mail.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mail.Message(nil), r.sent...)
}

// LastLink returns the first link of the most recent message sent to addr.
func (r *Recorder) LastLink(addr string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.sent) - 1; i >= 0; i-- {
		for _, to := range r.sent[i].To {
			if to != addr {
				continue
			}
			m := hrefRe.FindStringSubmatch(r.sent[i].HTML)
			if m == nil {
				return "", false
			}
			return html.UnescapeString(m[1]), true
		}
	}
	return "", false
}
