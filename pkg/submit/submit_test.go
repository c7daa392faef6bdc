package submit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vucehq/go-leadengine/pkg/lead"
)

func sampleRecord() *lead.Record {
	return &lead.Record{
		FullName:        "Jordan Vale",
		Email:           "jordan@vale.dev",
		Country:         "US",
		PhonePrefix:     "+1",
		Phone:           "5551234567",
		ProjectGoal:     string(lead.GoalBuildFromScratch),
		Blocker:         "We cannot ship fast enough",
		Timeline:        string(lead.TimelineImmediate),
		EngagementScale: string(lead.ScaleStandardBuild),
		Origin:          string(lead.OriginReferral),
	}
}

func TestSend_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		var decoded map[string]any
		if err := json.Unmarshal(body, &decoded); err != nil {
			t.Errorf("body is not JSON: %v", err)
		}
		if decoded["fullName"] != "Jordan Vale" {
			t.Errorf("fullName = %v", decoded["fullName"])
		}
		_, _ = w.Write([]byte(`{"success":true,"message":"Thank you for your message! We will get back to you soon."}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	result := client.Send(context.Background(), sampleRecord())
	if !result.OK {
		t.Fatalf("result = %+v, want OK", result)
	}
	if result.Message != "Thank you for your message! We will get back to you soon." {
		t.Fatalf("message = %q", result.Message)
	}
}

func TestSend_ServerErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Server configuration error"}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	result := client.Send(context.Background(), sampleRecord())
	if result.OK {
		t.Fatalf("result should fail on 500")
	}
	if result.Message != "Server configuration error" {
		t.Fatalf("message = %q, want error body passthrough", result.Message)
	}
}

func TestSend_UnreadableErrorBodyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream exploded`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	result := client.Send(context.Background(), sampleRecord())
	if result.OK || result.Message != FallbackMessage {
		t.Fatalf("result = %+v, want fallback message", result)
	}
}

func TestSend_NetworkFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	client := New(srv.URL)
	result := client.Send(context.Background(), sampleRecord())
	if result.OK || result.Message != FallbackMessage {
		t.Fatalf("result = %+v, want fallback message", result)
	}
}

func TestSend_NilRecord(t *testing.T) {
	client := New("http://localhost:0")
	result := client.Send(context.Background(), nil)
	if result.OK {
		t.Fatalf("nil record should not submit")
	}
}
