package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vucehq/go-leadengine/pkg/lead"
)

type stubMailer struct {
	sent    []Message
	ids     []string
	failIdx int // 1-based index of the send that fails; 0 = never
}

func (m *stubMailer) Send(_ context.Context, msg Message) (string, error) {
	m.sent = append(m.sent, msg)
	if m.failIdx > 0 && len(m.sent) == m.failIdx {
		return "", errors.New("provider down")
	}
	id := "msg_" + string(rune('a'+len(m.sent)-1))
	m.ids = append(m.ids, id)
	return id, nil
}

func fixedTemplates(t *testing.T) *Templates {
	t.Helper()
	templates, err := NewTemplates(WithNow(func() time.Time {
		return time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)
	}))
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	return templates
}

func relayOptions(t *testing.T, mailer Mailer) Options {
	t.Helper()
	opts, err := NewOptions(
		WithMailer(mailer),
		WithTemplates(fixedTemplates(t)),
		WithContactEmail("studio@vuce.in"),
		WithFromEmail("Vuce <noreply@vuce.in>"),
	)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	return opts
}

func validBody() string {
	record := lead.Record{
		FullName:        "Jordan Vale",
		Email:           "jordan@vale.dev",
		LinkedIn:        "linkedin.com/in/jordanvale",
		Country:         "US",
		PhonePrefix:     "+1",
		Phone:           "5551234567",
		ProjectGoal:     string(lead.GoalScaleInfrastructure),
		Blocker:         "Traffic spikes take the site down",
		Vision:          "A platform that survives launch day",
		Timeline:        string(lead.TimelineImmediate),
		EngagementScale: string(lead.ScaleEnterprise),
		Origin:          string(lead.OriginReferral),
	}
	raw, _ := json.Marshal(record)
	return string(raw)
}

func post(handler http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, RoutePath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandler_SuccessSendsBothEmails(t *testing.T) {
	mailer := &stubMailer{}
	handler := Handler(relayOptions(t, mailer))

	rec := post(handler, validBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success  bool     `json:"success"`
		Message  string   `json:"message"`
		EmailIDs EmailIDs `json:"emailIds"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Message != "Thank you for your message! We will get back to you soon." {
		t.Fatalf("response = %+v", resp)
	}
	if resp.EmailIDs.Client == "" || resp.EmailIDs.Admin == "" || resp.EmailIDs.Client == resp.EmailIDs.Admin {
		t.Fatalf("emailIds = %+v", resp.EmailIDs)
	}

	if len(mailer.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(mailer.sent))
	}
	client, admin := mailer.sent[0], mailer.sent[1]
	if client.To[0] != "jordan@vale.dev" {
		t.Fatalf("client to = %v", client.To)
	}
	if client.Subject != "Thank You, Jordan Vale! We've Received Your Project Inquiry" {
		t.Fatalf("client subject = %q", client.Subject)
	}
	if !strings.Contains(client.HTML, "Jordan Vale") || !strings.Contains(client.HTML, "Scale Infrastructure") {
		t.Fatalf("client body missing record details")
	}
	if admin.To[0] != "studio@vuce.in" {
		t.Fatalf("admin to = %v", admin.To)
	}
	if !strings.Contains(admin.Subject, "New Contact Form Submission: Jordan Vale - Scale Infrastructure") {
		t.Fatalf("admin subject = %q", admin.Subject)
	}
	if !strings.Contains(admin.HTML, "+1 5551234567") {
		t.Fatalf("admin body missing phone")
	}
	if !strings.Contains(admin.HTML, "https://linkedin.com/in/jordanvale") {
		t.Fatalf("admin body should normalize bare profile hosts")
	}
}

func TestHandler_PreflightAndMethodGate(t *testing.T) {
	handler := Handler(relayOptions(t, &stubMailer{}))

	req := httptest.NewRequest(http.MethodOptions, RoutePath, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS headers: %v", rec.Header())
	}

	req = httptest.NewRequest(http.MethodGet, RoutePath, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Method not allowed") {
		t.Fatalf("GET body = %s", rec.Body.String())
	}
}

func TestHandler_Validation(t *testing.T) {
	mailer := &stubMailer{}
	handler := Handler(relayOptions(t, mailer))

	rec := post(handler, `{"fullName":"Jordan","email":"jordan@vale.dev"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing fields status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Missing required fields") {
		t.Fatalf("body = %s", rec.Body.String())
	}

	rec = post(handler, `{"fullName":"Jordan","email":"not an email","projectGoal":"AI Integration","blocker":"Everything is on fire"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad email status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid email address") {
		t.Fatalf("body = %s", rec.Body.String())
	}

	if len(mailer.sent) != 0 {
		t.Fatalf("rejected requests must not send email")
	}
}

func TestHandler_Unconfigured(t *testing.T) {
	opts, err := NewOptions(WithTemplates(fixedTemplates(t)))
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	handler := Handler(opts)

	rec := post(handler, validBody())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Server configuration error") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestHandler_DeliveryFailure(t *testing.T) {
	mailer := &stubMailer{failIdx: 2}
	handler := Handler(relayOptions(t, mailer))

	rec := post(handler, validBody())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Failed to send emails") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestHandler_MalformedBody(t *testing.T) {
	handler := Handler(relayOptions(t, &stubMailer{}))
	rec := post(handler, `{"fullName":`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Failed to process request") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
