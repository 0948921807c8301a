package main

import "strings"

// BasicClassifier is the lightweight single-label variant used by the quick
// intake flow. It scans a small fixed rule table and returns the first rule
// whose keyword set matches; it never produces symptoms or decisions.
type BasicClassifier struct{}

type basicRule struct {
	keywords []string
	service  string
	subType  string
}

const (
	basicMatchConfidence   = 0.85
	basicDefaultConfidence = 0.60
)

var basicRules = []basicRule{
	{[]string{"cámara", "no responde", "sin imagen"}, ServiceCameraDown, SubCamNoResp},
	{[]string{"congelada", "freeze"}, ServiceCameraDown, SubCamFrozen},
	{[]string{"ptz"}, ServiceCameraDown, SubCamPTZ},
	{[]string{"oscura"}, ServiceCameraDown, SubCamDark},

	{[]string{"almacenamiento", "nvr", "no grab"}, ServiceStorage, SubStorNoRecord},
	{[]string{"retención"}, ServiceStorage, SubStorRetention},
	{[]string{"corrupt"}, ServiceStorage, SubStorCorrupt},

	{[]string{"evidencia", "cadena"}, ServiceEvidence, SubEvidChain},

	{[]string{"login", "hack", "acceso", "bloqueo"}, ServiceUnauthorized, SubAccLoginAttempt},

	{[]string{"analítica", "falso positivo"}, ServiceAnalytics, SubAnalFP},
	{[]string{"no detecta"}, ServiceAnalytics, SubAnalMiss},

	{[]string{"caído", "no funciona", "sitio"}, ServiceOutage, SubOutageSite},
}

func NewBasicClassifier() *BasicClassifier {
	return &BasicClassifier{}
}

func (c *BasicClassifier) Classify(text string) BasicClassification {
	t := strings.ToLower(text)
	for _, rule := range basicRules {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return BasicClassification{
					Service:    rule.service,
					SubType:    rule.subType,
					Confidence: basicMatchConfidence,
				}
			}
		}
	}
	return BasicClassification{
		Service:    ServiceOther,
		SubType:    SubOtherDescribe,
		Confidence: basicDefaultConfidence,
	}
}

func (c *BasicClassifier) ParseUser(text string) UserInfo {
	return ExtractUserInfo(text)
}
