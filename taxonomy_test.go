package main

import "testing"

func TestValidateTaxonomy(t *testing.T) {
	if err := ValidateTaxonomy(); err != nil {
		t.Fatalf("ValidateTaxonomy failed: %v", err)
	}
}

func TestServiceForSubtype(t *testing.T) {
	if got := ServiceForSubtype(SubCamFrozen); got != ServiceCameraDown {
		t.Errorf("ServiceForSubtype(%s) = %s", SubCamFrozen, got)
	}
	if got := ServiceForSubtype("bogus"); got != ServiceOther {
		t.Errorf("ServiceForSubtype(bogus) = %s, want %s", got, ServiceOther)
	}
}

func TestLabels(t *testing.T) {
	if got := ServiceLabel(ServiceCameraDown); got != "Cámara caída / imagen perdida" {
		t.Errorf("ServiceLabel = %q", got)
	}
	if got := ServiceLabel("unknown_key"); got != "unknown_key" {
		t.Errorf("unknown service label = %q, want the key itself", got)
	}
	if got := SubtypeLabel(""); got != "No definido" {
		t.Errorf("empty subtype label = %q", got)
	}
}

func TestMainMenuTokensResolvable(t *testing.T) {
	special := map[string]bool{
		tokenMyQueries:      true,
		tokenBasicAssist:    true,
		tokenAdvancedAssist: true,
	}
	for _, b := range mainMenu {
		if !IsService(b.Token) && !special[b.Token] {
			t.Errorf("main menu token %q is neither a service nor a known action", b.Token)
		}
	}
}

func TestPriorityOrderCoversAllSubtypes(t *testing.T) {
	ranked := make(map[string]bool, len(priorityOrder))
	for _, s := range priorityOrder {
		ranked[s] = true
	}
	for sub := range subtypeService {
		if !ranked[sub] {
			t.Errorf("subtype %s missing from priority order", sub)
		}
	}
	if len(priorityOrder) != len(subtypeService) {
		t.Errorf("priority order has %d entries, taxonomy has %d", len(priorityOrder), len(subtypeService))
	}
}
