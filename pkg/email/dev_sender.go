package email

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
)

// DevSender writes each message to dir as an .html body plus a .json
// metadata file listing the links it contains, so confirmation links can be
// followed locally without a mail provider.
type DevSender struct {
	dir string
	seq atomic.Uint64
	now func() time.Time
}

// NewDevSender returns a sender that writes into dir, creating it on first use.
func NewDevSender(dir string) EmailSender {
	return &DevSender{dir: dir, now: time.Now}
}

type devMessage struct {
	Timestamp string   `json:"timestamp"`
	SendTo    string   `json:"send_to"`
	Subject   string   `json:"subject"`
	Tag       string   `json:"tag,omitempty"`
	Links     []string `json:"links,omitempty"`
}

var (
	hrefPattern   = regexp.MustCompile(`href="([^"]+)"`)
	unsafePattern = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)
)

func (d *DevSender) SendEmail(_ context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory: %v", ErrFailedToSendEmail, err)
	}

	now := d.now()
	name := params.Tag
	if name == "" {
		name = params.Subject
	}
	// The sequence keeps messages sent within the same second apart.
	base := filepath.Join(d.dir, fmt.Sprintf("%s_%04d_%s",
		now.Format("2006_01_02_150405"), d.seq.Add(1), fileSafe(name)))

	if err := os.WriteFile(base+".html", []byte(params.BodyHTML), 0o644); err != nil {
		return fmt.Errorf("%w: write body: %v", ErrFailedToSendEmail, err)
	}

	meta, err := json.MarshalIndent(devMessage{
		Timestamp: now.Format(time.RFC3339),
		SendTo:    params.SendTo,
		Subject:   params.Subject,
		Tag:       params.Tag,
		Links:     links(params.BodyHTML),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal metadata: %v", ErrFailedToSendEmail, err)
	}
	if err := os.WriteFile(base+".json", meta, 0o644); err != nil {
		return fmt.Errorf("%w: write metadata: %v", ErrFailedToSendEmail, err)
	}

	return nil
}

func links(body string) []string {
	var out []string
	for _, m := range hrefPattern.FindAllStringSubmatch(body, -1) {
		out = append(out, html.UnescapeString(m[1]))
	}
	return out
}

// fileSafe lowercases s, turns spaces into underscores and drops anything
// outside [a-z0-9-_.], capped at 100 bytes.
func fileSafe(s string) string {
	s = unsafePattern.ReplaceAllString(strings.ReplaceAll(s, " ", "_"), "")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		return "email"
	}
	return strings.ToLower(s)
}
