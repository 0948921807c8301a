package main

import (
	"encoding/json"
	"testing"

	"github.com/slack-go/slack/slackevents"
)

func TestMediaType(t *testing.T) {
	cases := []struct {
		mime string
		want string
	}{
		{"image/jpeg", "photo"},
		{"image/png", "photo"},
		{"video/mp4", "video"},
		{"audio/ogg", "audio"},
		{"application/pdf", "document"},
		{"", "document"},
	}
	for _, tc := range cases {
		if got := mediaType(tc.mime); got != tc.want {
			t.Errorf("mediaType(%q) = %q, want %q", tc.mime, got, tc.want)
		}
	}
}

func TestMessageFiles(t *testing.T) {
	raw := json.RawMessage(`{"type":"message","subtype":"file_share","files":[
		{"mimetype":"image/jpeg","url_private":"https://files.example/F1"},
		{"mimetype":"application/pdf","url_private":"https://files.example/F2"}]}`)
	files := messageFiles(slackevents.EventsAPIEvent{
		Data: &slackevents.EventsAPICallbackEvent{InnerEvent: &raw},
	})
	if len(files) != 2 {
		t.Fatalf("decoded %d files, want 2", len(files))
	}
	if files[0].URLPrivate != "https://files.example/F1" || files[0].Mimetype != "image/jpeg" {
		t.Fatalf("first file wrong: %+v", files[0])
	}
	if files[1].URLPrivate != "https://files.example/F2" {
		t.Fatalf("second file wrong: %+v", files[1])
	}

	if got := messageFiles(slackevents.EventsAPIEvent{}); got != nil {
		t.Fatalf("expected nil without a raw callback payload, got %+v", got)
	}
}

func TestEventsAPIFileShare(t *testing.T) {
	f := newFixture(fullCaps())

	f.machine.HandleText(text("u30", "hola"))
	f.machine.HandleCallback(callback("u30", ServiceCameraDown))
	f.machine.HandleCallback(callback("u30", SubCamNoResp))
	f.machine.HandleText(text("u30", "Ana Ruiz"))
	f.machine.HandleText(text("u30", "11223344"))
	f.machine.HandleText(text("u30", "3001112233"))

	raw := json.RawMessage(`{"type":"message","subtype":"file_share",
		"user":"u30","channel":"Cu30","channel_type":"im",
		"text":"la cámara amaneció así",
		"files":[{"mimetype":"image/jpeg","url_private":"https://files.example/F1"}]}`)
	handleEventsAPI(f.machine, slackevents.EventsAPIEvent{
		Type: slackevents.CallbackEvent,
		Data: &slackevents.EventsAPICallbackEvent{InnerEvent: &raw},
		InnerEvent: slackevents.EventsAPIInnerEvent{
			Type: "message",
			Data: &slackevents.MessageEvent{
				User: "u30", Channel: "Cu30", ChannelType: "im",
				SubType: "file_share", Text: "la cámara amaneció así",
			},
		},
	})

	if len(f.store.tickets) != 1 {
		t.Fatalf("file share did not finalize: %d tickets", len(f.store.tickets))
	}
	evs := f.store.evidences[1]
	if len(evs) != 1 || evs[0].FileRef != "https://files.example/F1" || evs[0].FileType != "photo" {
		t.Fatalf("evidence wrong: %+v", evs)
	}
	if f.store.tickets[0].Description != "la cámara amaneció así" {
		t.Fatalf("caption not merged: %q", f.store.tickets[0].Description)
	}
}

func TestParseTicketArg(t *testing.T) {
	if id, err := parseTicketArg("  42 "); err != nil || id != 42 {
		t.Fatalf("parseTicketArg(42) = %d, %v", id, err)
	}
	if _, err := parseTicketArg("abc"); err == nil {
		t.Fatal("expected error for non-numeric arg")
	}
	if _, err := parseTicketArg(""); err == nil {
		t.Fatal("expected error for empty arg")
	}
}
