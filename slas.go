package main

// SLA profiles per (service, subtype). Resolution is a pure two-level
// lookup: unknown service → global default; known service without the
// subtype → that service's default if it has one, else the global default.

type serviceSLA struct {
	subtypes map[string]SLAProfile
	fallback *SLAProfile
}

var globalDefaultSLA = SLAProfile{
	Category: "Media", Priority: 2, ResolutionHours: 120,
	ResolutionTime: "5 días", SLATarget: "Incidente general",
}

var slaTable = map[string]serviceSLA{
	ServiceOutage: {
		fallback: &SLAProfile{Category: "Crítica", Priority: 1, ResolutionHours: 8,
			ResolutionTime: "8 horas", SLATarget: "Restablecimiento servicio crítico ≤8h"},
	},
	ServiceCameraDown: {
		subtypes: map[string]SLAProfile{
			SubCamNoResp: {Category: "Alta", Priority: 1, ResolutionHours: 4,
				ResolutionTime: "4h (urbano) / 24h (rural)", SLATarget: "MTTR cámara ≤4h urbano"},
			SubCamFrozen: {Category: "Alta", Priority: 1, ResolutionHours: 6,
				ResolutionTime: "6 horas", SLATarget: "Restauración de imagen ≤6h"},
			SubCamPTZ: {Category: "Media", Priority: 2, ResolutionHours: 24,
				ResolutionTime: "24 horas", SLATarget: "PTZ reparación ≤24h"},
			SubCamDark: {Category: "Media", Priority: 2, ResolutionHours: 24,
				ResolutionTime: "24 horas", SLATarget: "Corrección exposición ≤24h"},
		},
		fallback: &SLAProfile{Category: "Alta", Priority: 1, ResolutionHours: 24,
			ResolutionTime: "24 horas", SLATarget: "Soporte cámaras"},
	},
	ServiceUnauthorized: {
		subtypes: map[string]SLAProfile{
			SubAccLoginAttempt: {Category: "Crítica", Priority: 1, ResolutionHours: 2,
				ResolutionTime: "2 horas", SLATarget: "Acceso no autorizado ≤2h"},
			SubAccBadPriv: {Category: "Alta", Priority: 1, ResolutionHours: 4,
				ResolutionTime: "4 horas", SLATarget: "Corrección permisos ≤4h"},
			SubAccLocked: {Category: "Alta", Priority: 1, ResolutionHours: 4,
				ResolutionTime: "4 horas", SLATarget: "Cuenta desbloqueada ≤4h"},
		},
		fallback: &SLAProfile{Category: "Alta", Priority: 1, ResolutionHours: 4,
			ResolutionTime: "4 horas", SLATarget: "Incidente de seguridad"},
	},
	ServiceEvidence: {
		subtypes: map[string]SLAProfile{
			SubEvidUrgent: {Category: "Crítica", Priority: 1, ResolutionHours: 72,
				ResolutionTime: "72 horas", SLATarget: "Evidencias ≤72h"},
			SubEvidChain: {Category: "Crítica", Priority: 1, ResolutionHours: 72,
				ResolutionTime: "72 horas", SLATarget: "Cadena custodia ≤72h"},
			SubEvidCheck: {Category: "Media", Priority: 2, ResolutionHours: 120,
				ResolutionTime: "5 días", SLATarget: "Verificación ≤5 días"},
		},
	},
	ServiceStorage: {
		subtypes: map[string]SLAProfile{
			SubStorNoRecord: {Category: "Crítica", Priority: 1, ResolutionHours: 48,
				ResolutionTime: "48 horas", SLATarget: "Investigación grabaciones ≤48h"},
			SubStorRetention: {Category: "Alta", Priority: 2, ResolutionHours: 120,
				ResolutionTime: "5 días", SLATarget: "Retención 30/90/365 días"},
			SubStorCorrupt: {Category: "Alta", Priority: 2, ResolutionHours: 72,
				ResolutionTime: "72 horas", SLATarget: "Corrección repositorio ≤72h"},
		},
	},
	ServiceAnalytics: {
		subtypes: map[string]SLAProfile{
			SubAnalFP: {Category: "Alta", Priority: 1, ResolutionHours: 72,
				ResolutionTime: "72 horas", SLATarget: "Ajuste algoritmo ≤72h"},
			SubAnalMiss: {Category: "Alta", Priority: 1, ResolutionHours: 120,
				ResolutionTime: "5 días", SLATarget: "Corrección misses ≤5 días"},
			SubAnalPerf: {Category: "Media", Priority: 2, ResolutionHours: 168,
				ResolutionTime: "7 días", SLATarget: "Optimización modelo ≤7 días"},
		},
	},
	ServiceMaintenance: {
		subtypes: map[string]SLAProfile{
			SubMantPreventive: {Category: "Baja", Priority: 3, ResolutionHours: 0,
				ResolutionTime: "Programado", SLATarget: "Mantenimiento trimestral"},
			SubMantReplace: {Category: "Alta", Priority: 1, ResolutionHours: 48,
				ResolutionTime: "48 horas", SLATarget: "Reemplazo crítico ≤48h"},
			SubMantPower: {Category: "Media", Priority: 2, ResolutionHours: 48,
				ResolutionTime: "48 horas", SLATarget: "Revisión energética ≤48h"},
		},
	},
	ServiceVandalism: {
		subtypes: map[string]SLAProfile{
			SubVandReport: {Category: "Crítica", Priority: 1, ResolutionHours: 72,
				ResolutionTime: "72 horas", SLATarget: "Atención vandalismo ≤72h"},
			SubVandTheft: {Category: "Crítica", Priority: 1, ResolutionHours: 72,
				ResolutionTime: "72 horas", SLATarget: "Atención robo ≤72h"},
		},
	},
	ServiceOther: {
		fallback: &globalDefaultSLA,
	},
}

// ResolveSLA returns the severity profile for a (service, subtype) pair.
// Deterministic, no fallback chain beyond the one described above.
func ResolveSLA(service, subType string) SLAProfile {
	svc, ok := slaTable[service]
	if !ok {
		return globalDefaultSLA
	}
	if p, ok := svc.subtypes[subType]; ok {
		return p
	}
	if svc.fallback != nil {
		return *svc.fallback
	}
	return globalDefaultSLA
}
