package main

import "testing"

func TestExtractUserInfo(t *testing.T) {
	info := ExtractUserInfo("me llamo Juan Pérez, cédula 12345678, teléfono 3001234567")
	if info.Name != "Juan Pérez" {
		t.Errorf("Name = %q, want Juan Pérez", info.Name)
	}
	if info.ID != "12345678" {
		t.Errorf("ID = %q, want 12345678", info.ID)
	}
	if info.Phone != "3001234567" {
		t.Errorf("Phone = %q, want 3001234567", info.Phone)
	}
}

func TestExtractUserInfoCountryCode(t *testing.T) {
	info := ExtractUserInfo("mi nombre es Ana, marcar al +57 3001234567")
	if info.Phone != "+57 3001234567" {
		t.Errorf("Phone = %q, want +57 3001234567", info.Phone)
	}
	if info.Name != "Ana" {
		t.Errorf("Name = %q, want Ana", info.Name)
	}
}

func TestExtractUserInfoPartial(t *testing.T) {
	info := ExtractUserInfo("la cámara del parque está caída")
	if info.Name != "" || info.ID != "" || info.Phone != "" {
		t.Errorf("expected empty info, got %+v", info)
	}
}

func TestExtractUserInfoPhoneAlsoMatchesID(t *testing.T) {
	// A ten-digit mobile number satisfies the id pattern too when no other
	// digit run precedes it. Known overlap, both fields get filled.
	info := ExtractUserInfo("soy Carlos, 3001234567")
	if info.Phone != "3001234567" {
		t.Errorf("Phone = %q, want 3001234567", info.Phone)
	}
	if info.ID != "3001234567" {
		t.Errorf("ID = %q, want 3001234567", info.ID)
	}
}
