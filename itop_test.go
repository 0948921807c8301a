package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestITopRegisterSuccess(t *testing.T) {
	var gotUser, gotVersion string
	var gotPayload itopCreateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm failed: %v", err)
		}
		gotUser = r.PostFormValue("auth_user")
		gotVersion = r.PostFormValue("version")
		if err := json.Unmarshal([]byte(r.PostFormValue("json_data")), &gotPayload); err != nil {
			t.Errorf("json_data unmarshal failed: %v", err)
		}
		if r.Header.Get("X-Correlation-ID") == "" {
			t.Error("missing correlation id header")
		}
		w.Write([]byte(`{"code":0,"message":"","objects":{"UserRequest::123":{"code":0,"fields":{"ref":"R-000123"}}}}`))
	}))
	defer srv.Close()

	reg := NewITopRegistrar(Config{
		ITopURL: srv.URL, ITopUser: "bot", ITopPassword: "secret",
		ITopClass: "UserRequest", ITopOrg: "Ciudad Segura",
	})

	ref, err := reg.Register(Ticket{
		ID: 7, FullName: "Juan Pérez Gómez",
		IncidentType: ServiceCameraDown, SubType: SubCamNoResp,
		Category: "Alta", Priority: 1, Description: "sin señal",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if ref != "R-000123" {
		t.Fatalf("ref = %q", ref)
	}
	if gotUser != "bot" || gotVersion != "1.3" {
		t.Fatalf("auth form wrong: user=%q version=%q", gotUser, gotVersion)
	}
	if gotPayload.Operation != "core/create" || gotPayload.Class != "UserRequest" {
		t.Fatalf("payload wrong: %+v", gotPayload)
	}
	if gotPayload.Fields["impact"] != "3" || gotPayload.Fields["urgency"] != "2" {
		t.Fatalf("Alta mapped to impact=%v urgency=%v", gotPayload.Fields["impact"], gotPayload.Fields["urgency"])
	}
	if gotPayload.Fields["org_id"] != "SELECT Organization WHERE name = 'Ciudad Segura'" {
		t.Fatalf("org_id = %v", gotPayload.Fields["org_id"])
	}
}

func TestITopRegisterAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":1,"message":"invalid credentials"}`))
	}))
	defer srv.Close()

	reg := NewITopRegistrar(Config{ITopURL: srv.URL, ITopUser: "bot", ITopPassword: "bad", ITopClass: "UserRequest"})
	if _, err := reg.Register(Ticket{Category: "Media"}); err == nil {
		t.Fatal("expected error from iTOP code != 0")
	}
}

func TestSplitName(t *testing.T) {
	cases := []struct {
		in          string
		first, rest string
	}{
		{"", "", ""},
		{"Juan", "Juan", "Juan"},
		{"Juan Pérez", "Juan", "Pérez"},
		{"Juan Pérez Gómez", "Juan", "Pérez Gómez"},
	}
	for _, tc := range cases {
		first, rest := splitName(tc.in)
		if first != tc.first || rest != tc.rest {
			t.Errorf("splitName(%q) = %q/%q, want %q/%q", tc.in, first, rest, tc.first, tc.rest)
		}
	}
}

func TestNoopRegistrar(t *testing.T) {
	ref, err := NoopRegistrar{}.Register(Ticket{ID: 1})
	if err != nil || ref != "" {
		t.Fatalf("NoopRegistrar = %q, %v", ref, err)
	}
}
