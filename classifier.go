package main

import (
	"math"
	"regexp"
	"strings"
)

const maxConfidence = 0.98
const maxSymptoms = 6

// KeywordClassifier is the full multi-label matcher over the lexicon. It is
// immutable after construction; phrase variants are normalized and their
// word-boundary patterns compiled once.
type KeywordClassifier struct {
	entries      []compiledEntry
	priorityRank map[string]int
	fallbacks    []fallbackBucket
}

type compiledEntry struct {
	subtype string
	phrases []compiledPhrase
}

type compiledPhrase struct {
	text string
	re   *regexp.Regexp
}

// fallbackBucket is a generic anchor-term probe used only when no lexicon
// phrase matched. Buckets are tried in order; the first hit wins.
type fallbackBucket struct {
	anchors []compiledPhrase
	service string
	subType string
	symptom string
}

func NewKeywordClassifier() *KeywordClassifier {
	c := &KeywordClassifier{
		priorityRank: make(map[string]int, len(priorityOrder)),
	}
	for i, s := range priorityOrder {
		c.priorityRank[s] = i
	}
	for _, e := range lexicon {
		c.entries = append(c.entries, compiledEntry{
			subtype: e.Subtype,
			phrases: compilePhrases(e.Phrases),
		})
	}
	c.fallbacks = []fallbackBucket{
		{compilePhrases([]string{"camara", "cámara", "cam", "camaras", "cámaras", "camera"}),
			ServiceCameraDown, SubCamNoResp, "cam_general"},
		{compilePhrases([]string{"nvr", "vms", "grabacion", "grabación", "graba", "grabar", "grabaciones"}),
			ServiceStorage, SubStorNoRecord, "storage_general"},
		{compilePhrases([]string{"analitica", "analítica", "detectar", "modelo", "falso positivo", "falsos positivos"}),
			ServiceAnalytics, SubAnalFP, "analytics_general"},
		{compilePhrases([]string{"login", "acceso", "intruso", "hack", "credencial"}),
			ServiceUnauthorized, SubAccLoginAttempt, "security_general"},
	}
	return c
}

func compilePhrases(phrases []string) []compiledPhrase {
	out := make([]compiledPhrase, 0, len(phrases))
	for _, p := range phrases {
		text := stripDiacritics(strings.ToLower(p))
		tokens := strings.Fields(text)
		for i, t := range tokens {
			tokens[i] = regexp.QuoteMeta(t)
		}
		re := regexp.MustCompile(`\b` + strings.Join(tokens, `\s+`) + `\b`)
		out = append(out, compiledPhrase{text: text, re: re})
	}
	return out
}

// matchesAny reports whether any phrase occurs in the normalized text, either
// as a plain substring or as a whole-word sequence tolerant of whitespace-run
// variation.
func matchesAny(normalized string, phrases []compiledPhrase) bool {
	for _, p := range phrases {
		if strings.Contains(normalized, p.text) {
			return true
		}
		if p.re.MatchString(normalized) {
			return true
		}
	}
	return false
}

// Classify runs the multi-label scan. Total: any input, including empty,
// yields a result inside the taxonomy with confidence in [0, 0.98].
func (c *KeywordClassifier) Classify(rawText string) Classification {
	normalized := Normalize(rawText)

	result := Classification{
		Service: ServiceOther,
		SubType: SubOtherDescribe,
	}

	var detected []string
	for _, e := range c.entries {
		if matchesAny(normalized, e.phrases) {
			detected = append(detected, e.subtype)
		}
	}

	if len(detected) > 0 {
		result.DetectedSubtypes = detected
		result.SubType = c.primarySubtype(detected)
		result.Service = ServiceForSubtype(result.SubType)
		if len(detected) > maxSymptoms {
			result.Symptoms = detected[:maxSymptoms]
		} else {
			result.Symptoms = detected
		}
	} else {
		matched := false
		for _, fb := range c.fallbacks {
			if matchesAny(normalized, fb.anchors) {
				result.Service = fb.service
				result.SubType = fb.subType
				result.Symptoms = append(result.Symptoms, fb.symptom)
				matched = true
				break
			}
		}
		if !matched {
			result.Symptoms = append(result.Symptoms, "none_detected")
		}
	}

	matchCount := len(result.DetectedSubtypes)
	if matchCount == 0 {
		matchCount = len(result.Symptoms)
	}
	result.Confidence = computeConfidence(matchCount, len(rawText), 0.62)

	decisionSource := result.DetectedSubtypes
	if len(decisionSource) == 0 {
		decisionSource = []string{result.SubType}
	}
	result.Decisions = SynthesizeDecisions(decisionSource)

	result.Meta = AnalysisMeta{
		RawText:         rawText,
		NormalizedText:  normalized,
		MatchedSubtypes: result.DetectedSubtypes,
	}
	return result
}

// primarySubtype picks the first detected subtype by priority order; if none
// of the detected subtypes appears there (cannot happen while the parity
// check holds), the first in scan order wins.
func (c *KeywordClassifier) primarySubtype(detected []string) string {
	best := ""
	bestRank := len(c.priorityRank)
	for _, s := range detected {
		if rank, ok := c.priorityRank[s]; ok && rank < bestRank {
			best = s
			bestRank = rank
		}
	}
	if best == "" {
		return detected[0]
	}
	return best
}

// computeConfidence is a bounded heuristic: more matched subtypes and longer
// reports raise it, capped at 0.98. Not a calibrated probability.
func computeConfidence(matchCount, textLength int, base float64) float64 {
	matchBoost := math.Min(0.25, float64(matchCount)*0.08)
	length := float64(textLength)
	if length < 10 {
		length = 10
	}
	lengthBoost := math.Min(0.10, math.Log10(length)*0.02)
	return math.Min(maxConfidence, base+matchBoost+lengthBoost)
}
