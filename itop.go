package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// ITopRegistrar mirrors local tickets into an iTOP instance through its
// REST endpoint. Credentials travel as form fields, as the API requires.
type ITopRegistrar struct {
	cfg    Config
	client *http.Client
}

func NewITopRegistrar(cfg Config) *ITopRegistrar {
	return &ITopRegistrar{cfg: cfg, client: externalHTTPClient}
}

// Severity category to iTOP impact/urgency scales (1 highest impact in
// iTOP is 3, department-wide).
var itopImpact = map[string]string{
	"Crítica": "3",
	"Alta":    "3",
	"Media":   "2",
	"Baja":    "1",
}

var itopUrgency = map[string]string{
	"Crítica": "3",
	"Alta":    "2",
	"Media":   "2",
	"Baja":    "1",
}

type itopCreateRequest struct {
	Operation string         `json:"operation"`
	Comment   string         `json:"comment"`
	Class     string         `json:"class"`
	Output    string         `json:"output_fields"`
	Fields    map[string]any `json:"fields"`
}

type itopResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Objects map[string]struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Fields  struct {
			Ref string `json:"ref"`
		} `json:"fields"`
	} `json:"objects"`
}

func (r *ITopRegistrar) Register(t Ticket) (string, error) {
	fields := map[string]any{
		"title":       fmt.Sprintf("%s - %s", ServiceLabel(t.IncidentType), SubtypeLabel(t.SubType)),
		"description": itopDescription(t),
		"impact":      mapOrDefault(itopImpact, t.Category, "2"),
		"urgency":     mapOrDefault(itopUrgency, t.Category, "2"),
		"priority":    itopPriority(t.Priority),
		"origin":      "chat",
	}
	if r.cfg.ITopOrg != "" {
		fields["org_id"] = fmt.Sprintf("SELECT Organization WHERE name = '%s'", r.cfg.ITopOrg)
	}
	if first, rest := splitName(t.FullName); first != "" {
		fields["caller_id"] = map[string]any{
			"first_name": first,
			"name":       rest,
		}
	}

	payload := itopCreateRequest{
		Operation: "core/create",
		Comment:   fmt.Sprintf("Creado por bot de incidentes (ticket local %d)", t.ID),
		Class:     r.cfg.ITopClass,
		Output:    "id, ref",
		Fields:    fields,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding iTOP payload: %w", err)
	}

	form := url.Values{}
	form.Set("auth_user", r.cfg.ITopUser)
	form.Set("auth_pwd", r.cfg.ITopPassword)
	form.Set("version", "1.3")
	form.Set("json_data", string(jsonData))

	endpoint := strings.TrimRight(r.cfg.ITopURL, "/") + "/webservices/rest.php"
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating iTOP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Correlation-ID", uuid.NewString())

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling iTOP: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("reading iTOP response: %w", err)
	}
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("iTOP returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed itopResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parsing iTOP response: %w", err)
	}
	if parsed.Code != 0 {
		return "", fmt.Errorf("iTOP error %d: %s", parsed.Code, parsed.Message)
	}
	for _, obj := range parsed.Objects {
		if obj.Code != 0 {
			return "", fmt.Errorf("iTOP object error %d: %s", obj.Code, obj.Message)
		}
		if obj.Fields.Ref != "" {
			return obj.Fields.Ref, nil
		}
	}
	return "", nil
}

func itopDescription(t Ticket) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reportado por: %s (cédula %s, tel %s)\n", t.FullName, t.UserID, t.Phone)
	fmt.Fprintf(&b, "Categoría: %s, prioridad %d, SLA %s\n\n", t.Category, t.Priority, t.ResolutionTime)
	b.WriteString(t.Description)
	return b.String()
}

func itopPriority(p int) string {
	if p < 1 {
		p = 1
	}
	if p > 3 {
		p = 3
	}
	return fmt.Sprintf("%d", p)
}

func splitName(full string) (first, rest string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], parts[0]
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func mapOrDefault(m map[string]string, key, def string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}

// NoopRegistrar is wired when no iTOP endpoint is configured; tickets
// stay local only.
type NoopRegistrar struct{}

func (NoopRegistrar) Register(Ticket) (string, error) { return "", nil }
