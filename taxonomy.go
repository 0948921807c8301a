package main

import "fmt"

// Service and subtype keys form a fixed two-level taxonomy. Every subtype
// belongs to exactly one service; the mapping is hand-maintained and checked
// against the lexicon at startup (see ValidateTaxonomy).

const (
	ServiceOutage       = "svc_outage"
	ServiceCameraDown   = "camera_down"
	ServiceUnauthorized = "unauthorized_access"
	ServiceEvidence     = "evidence_request"
	ServiceStorage      = "storage_issue"
	ServiceAnalytics    = "analytics_issue"
	ServiceMaintenance  = "maintenance"
	ServiceVandalism    = "vandalism"
	ServiceOther        = "other_issue"
)

const (
	SubOutageSite         = "svc_outage_site"
	SubOutagePartial      = "svc_outage_partial"
	SubOutageIntermittent = "svc_outage_intermittent"
	SubCamNoResp          = "cam_noresp"
	SubCamFrozen          = "cam_frozen"
	SubCamPTZ             = "cam_ptz"
	SubCamDark            = "cam_dark"
	SubAccLoginAttempt    = "acc_login_attempt"
	SubAccBadPriv         = "acc_bad_priv"
	SubAccLocked          = "acc_locked"
	SubEvidUrgent         = "evid_urgent"
	SubEvidCheck          = "evid_check"
	SubEvidChain          = "evid_chain"
	SubStorNoRecord       = "stor_no_record"
	SubStorRetention      = "stor_retention"
	SubStorCorrupt        = "stor_corrupt"
	SubAnalFP             = "anal_fp"
	SubAnalMiss           = "anal_miss"
	SubAnalPerf           = "anal_perf"
	SubMantPreventive     = "mant_preventive"
	SubMantReplace        = "mant_replace"
	SubMantPower          = "mant_power"
	SubVandReport         = "vand_report"
	SubVandTheft          = "vand_theft"
	SubOtherDescribe      = "other_describe"
)

var subtypeService = map[string]string{
	SubOutageSite:         ServiceOutage,
	SubOutagePartial:      ServiceOutage,
	SubOutageIntermittent: ServiceOutage,
	SubCamNoResp:          ServiceCameraDown,
	SubCamFrozen:          ServiceCameraDown,
	SubCamPTZ:             ServiceCameraDown,
	SubCamDark:            ServiceCameraDown,
	SubAccLoginAttempt:    ServiceUnauthorized,
	SubAccBadPriv:         ServiceUnauthorized,
	SubAccLocked:          ServiceUnauthorized,
	SubEvidUrgent:         ServiceEvidence,
	SubEvidCheck:          ServiceEvidence,
	SubEvidChain:          ServiceEvidence,
	SubStorNoRecord:       ServiceStorage,
	SubStorRetention:      ServiceStorage,
	SubStorCorrupt:        ServiceStorage,
	SubAnalFP:             ServiceAnalytics,
	SubAnalMiss:           ServiceAnalytics,
	SubAnalPerf:           ServiceAnalytics,
	SubMantPreventive:     ServiceMaintenance,
	SubMantReplace:        ServiceMaintenance,
	SubMantPower:          ServiceMaintenance,
	SubVandReport:         ServiceVandalism,
	SubVandTheft:          ServiceVandalism,
	SubOtherDescribe:      ServiceOther,
}

// ServiceForSubtype falls back to other_issue for unknown keys so the
// classifier output always lands inside the taxonomy.
func ServiceForSubtype(sub string) string {
	if svc, ok := subtypeService[sub]; ok {
		return svc
	}
	return ServiceOther
}

func IsService(key string) bool {
	_, ok := submenus[key]
	return ok
}

func IsSubtype(key string) bool {
	_, ok := subtypeService[key]
	return ok
}

var serviceLabels = map[string]string{
	ServiceOutage:       "Caída del servicio (NOC)",
	ServiceCameraDown:   "Cámara caída / imagen perdida",
	ServiceUnauthorized: "Acceso no autorizado / bloqueo",
	ServiceEvidence:     "Solicitud de evidencia / cadena de custodia",
	ServiceStorage:      "Problema de almacenamiento / retención",
	ServiceAnalytics:    "Fallo o sesgo en analítica de video",
	ServiceMaintenance:  "Mantenimiento preventivo / correctivo",
	ServiceVandalism:    "Vandalismo / daño físico",
	ServiceOther:        "Otra incidencia",
}

var subtypeLabels = map[string]string{
	SubOutageSite:         "Afecta sitio completo",
	SubOutagePartial:      "Afecta cámaras puntuales",
	SubOutageIntermittent: "Interrupción intermitente",
	SubCamNoResp:          "Cámara no responde",
	SubCamFrozen:          "Imagen congelada",
	SubCamPTZ:             "PTZ no responde",
	SubCamDark:            "Imagen oscura / sobreexpuesta",
	SubAccLoginAttempt:    "Intento de login sospechoso",
	SubAccBadPriv:         "Usuario con permisos indebidos",
	SubAccLocked:          "Cuenta bloqueada",
	SubEvidUrgent:         "Entrega urgente (autoridades)",
	SubEvidCheck:          "Verificar disponibilidad",
	SubEvidChain:          "Cadena de custodia",
	SubStorNoRecord:       "No hay grabaciones",
	SubStorRetention:      "Retención incorrecta",
	SubStorCorrupt:        "Degradación / datos corruptos",
	SubAnalFP:             "Falsos positivos altos",
	SubAnalMiss:           "No detecta eventos",
	SubAnalPerf:           "Problema de rendimiento",
	SubMantPreventive:     "Visita preventiva",
	SubMantReplace:        "Reemplazo de equipo",
	SubMantPower:          "Revisión energía / cableado",
	SubVandReport:         "Daño físico - denuncia",
	SubVandTheft:          "Robo de equipo",
	SubOtherDescribe:      "Otro (describir)",
}

func ServiceLabel(key string) string {
	if l, ok := serviceLabels[key]; ok {
		return l
	}
	if key != "" {
		return key
	}
	return "No definido"
}

func SubtypeLabel(key string) string {
	if l, ok := subtypeLabels[key]; ok {
		return l
	}
	if key != "" {
		return key
	}
	return "No definido"
}

// Menu tokens that are not service/subtype keys.
const (
	tokenMyQueries       = "my_queries"
	tokenQueryTicket     = "query_ticket"
	tokenMenuHistory     = "menu_history"
	tokenBackMain        = "back_main"
	tokenBasicAssist     = "ia_assistant"
	tokenAdvancedAssist  = "ia_advanced"
	tokenBasicConfirm    = "ia_confirm"
	tokenBasicEdit       = "ia_edit"
	tokenAdvancedConfirm = "ia_advanced_confirm"
)

var mainMenu = []MenuButton{
	{Text: "📡 1. Caída del servicio (NOC)", Token: ServiceOutage},
	{Text: "🎥 2. Cámara caída / imagen perdida", Token: ServiceCameraDown},
	{Text: "🔒 3. Acceso no autorizado / bloqueo", Token: ServiceUnauthorized},
	{Text: "🧾 4. Solicitud de evidencia / cadena de custodia", Token: ServiceEvidence},
	{Text: "💾 5. Problema de almacenamiento / retención", Token: ServiceStorage},
	{Text: "🤖 6. Fallo o sesgo en analítica de video", Token: ServiceAnalytics},
	{Text: "🛠️ 7. Mantenimiento preventivo / correctivo", Token: ServiceMaintenance},
	{Text: "🚨 8. Vandalismo / daño físico a equipos", Token: ServiceVandalism},
	{Text: "❓ 9. Otra incidencia", Token: ServiceOther},
	{Text: "📁 Mis consultas", Token: tokenMyQueries},
	{Text: "🤖 IA Básica", Token: tokenBasicAssist},
	{Text: "🚀 IA Avanzada", Token: tokenAdvancedAssist},
}

var submenus = map[string][]MenuButton{
	ServiceOutage: {
		{Text: "Afecta sitio completo", Token: SubOutageSite},
		{Text: "Afecta cámaras puntuales", Token: SubOutagePartial},
		{Text: "Intermitente", Token: SubOutageIntermittent},
	},
	ServiceCameraDown: {
		{Text: "Cámara no responde", Token: SubCamNoResp},
		{Text: "Imagen congelada", Token: SubCamFrozen},
		{Text: "PTZ no responde", Token: SubCamPTZ},
		{Text: "Imagen oscura", Token: SubCamDark},
	},
	ServiceUnauthorized: {
		{Text: "Intento login sospechoso", Token: SubAccLoginAttempt},
		{Text: "Permisos indebidos", Token: SubAccBadPriv},
		{Text: "Cuenta bloqueada", Token: SubAccLocked},
	},
	ServiceEvidence: {
		{Text: "Entrega urgente", Token: SubEvidUrgent},
		{Text: "Verificar disponibilidad", Token: SubEvidCheck},
		{Text: "Cadena de custodia", Token: SubEvidChain},
	},
	ServiceStorage: {
		{Text: "No hay grabaciones", Token: SubStorNoRecord},
		{Text: "Retención incorrecta", Token: SubStorRetention},
		{Text: "Datos corruptos", Token: SubStorCorrupt},
	},
	ServiceAnalytics: {
		{Text: "Falsos positivos", Token: SubAnalFP},
		{Text: "No detecta eventos", Token: SubAnalMiss},
		{Text: "Problema rendimiento", Token: SubAnalPerf},
	},
	ServiceMaintenance: {
		{Text: "Visita preventiva", Token: SubMantPreventive},
		{Text: "Reemplazo equipo", Token: SubMantReplace},
		{Text: "Revisión energía/cableado", Token: SubMantPower},
	},
	ServiceVandalism: {
		{Text: "Daño físico", Token: SubVandReport},
		{Text: "Robo de equipo", Token: SubVandTheft},
	},
	ServiceOther: {
		{Text: "Describir problema", Token: SubOtherDescribe},
	},
}

// ValidateTaxonomy checks that the hand-maintained parallel tables agree:
// the lexicon, the priority order, the subtype→service map and the action
// runbooks must all cover exactly the same subtype keys. A mismatch means a
// subtype is unreachable or unmapped, which is a startup error rather than a
// silent runtime fallback.
func ValidateTaxonomy() error {
	lexKeys := make(map[string]bool, len(lexicon))
	for _, e := range lexicon {
		if lexKeys[e.Subtype] {
			return fmt.Errorf("taxonomy: duplicate lexicon key %q", e.Subtype)
		}
		lexKeys[e.Subtype] = true
	}

	prioKeys := make(map[string]bool, len(priorityOrder))
	for _, s := range priorityOrder {
		if prioKeys[s] {
			return fmt.Errorf("taxonomy: duplicate priority key %q", s)
		}
		prioKeys[s] = true
	}

	tables := map[string]map[string]bool{
		"priority order":  prioKeys,
		"service mapping": keySet(subtypeService),
		"action runbooks": keySet(actionMap),
		"labels":          keySet(subtypeLabels),
	}
	for name, keys := range tables {
		for k := range lexKeys {
			if !keys[k] {
				return fmt.Errorf("taxonomy: lexicon key %q missing from %s", k, name)
			}
		}
		for k := range keys {
			if !lexKeys[k] {
				return fmt.Errorf("taxonomy: %s key %q missing from lexicon", name, k)
			}
		}
	}

	for svc, buttons := range submenus {
		for _, b := range buttons {
			if subtypeService[b.Token] != svc {
				return fmt.Errorf("taxonomy: submenu %s offers %q which maps to %q", svc, b.Token, subtypeService[b.Token])
			}
		}
	}
	return nil
}

func keySet[V any](m map[string]V) map[string]bool {
	set := make(map[string]bool, len(m))
	for k := range m {
		set[k] = true
	}
	return set
}
