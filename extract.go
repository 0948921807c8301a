package main

import (
	"regexp"
	"strings"
)

// Fixed patterns for reporter identity fragments. The phone shape is a local
// mobile number (prefix digit 3 plus nine digits), optionally with the +57
// country code; the id is any 6-10 digit run. A phone can double as the id
// match — accepted limitation, no disambiguation is attempted.
var (
	phoneRegex = regexp.MustCompile(`3\d{9}|\+57\s?3\d{9}`)
	idRegex    = regexp.MustCompile(`\b\d{6,10}\b`)
	nameRegex  = regexp.MustCompile(`(?i)(me llamo|soy|mi nombre es)\s+([A-Za-zÁÉÍÓÚÑáéíóúñ ]+)`)
)

// ExtractUserInfo pulls name, id and phone fragments from raw text. Each
// extraction is independent and first-match-wins; absent fields stay empty.
func ExtractUserInfo(text string) UserInfo {
	var info UserInfo

	if m := phoneRegex.FindString(text); m != "" {
		info.Phone = m
	}
	if m := idRegex.FindString(text); m != "" {
		info.ID = m
	}
	if m := nameRegex.FindStringSubmatch(text); len(m) > 2 {
		info.Name = strings.TrimSpace(m[2])
	}
	return info
}
