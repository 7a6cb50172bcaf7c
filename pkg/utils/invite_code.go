package utils

import (
	"crypto/rand"
	"strings"
)

// Alphabet skips 0/O and 1/I so codes survive being read aloud.
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const inviteCodeLength = 6

func NewInviteCode() string {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(buf)
}

// ParseInviteCode accepts either a bare code or any URL containing a
// "/join/<code>" segment, and returns the uppercased code. Returns ""
// if nothing usable is found.
func ParseInviteCode(codeOrLink string) string {
	s := strings.TrimSpace(codeOrLink)
	if s == "" {
		return ""
	}
	if idx := strings.Index(s, "/join/"); idx >= 0 {
		s = s[idx+len("/join/"):]
		if cut := strings.IndexAny(s, "/?#"); cut >= 0 {
			s = s[:cut]
		}
	}
	return strings.ToUpper(s)
}
