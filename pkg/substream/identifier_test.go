package substream

import (
	"errors"
	"testing"
)

// TestParseIdentifier tests parsing of well-formed identifiers
func TestParseIdentifier(t *testing.T) {
	ident, err := ParseIdentifier("substream://1024:4096/17")
	if err != nil {
		t.Fatalf("ParseIdentifier failed: %v", err)
	}

	if ident.Scheme != "substream" {
		t.Errorf("Wrong scheme: got %q, want %q", ident.Scheme, "substream")
	}
	if ident.Offset != 1024 {
		t.Errorf("Wrong offset: got %d, want 1024", ident.Offset)
	}
	if ident.Length != 4096 {
		t.Errorf("Wrong length: got %d, want 4096", ident.Length)
	}
	if ident.ResourceID != "17" {
		t.Errorf("Wrong resource ID: got %q, want %q", ident.ResourceID, "17")
	}
}

// TestParseIdentifierSchemes verifies the scheme character class and that
// the parser does not judge the scheme's identity
func TestParseIdentifierSchemes(t *testing.T) {
	for _, raw := range []string{
		"substream://0:1/1",
		"other-scheme.v2://0:1/1",
		"X9://0:1/1",
	} {
		if _, err := ParseIdentifier(raw); err != nil {
			t.Errorf("ParseIdentifier(%q) failed: %v", raw, err)
		}
	}
}

// TestParseIdentifierRoundTrip verifies String reassembles the input
func TestParseIdentifierRoundTrip(t *testing.T) {
	raw := "substream://5:10/3"
	ident, err := ParseIdentifier(raw)
	if err != nil {
		t.Fatalf("ParseIdentifier failed: %v", err)
	}
	if ident.String() != raw {
		t.Errorf("Round trip mismatch: got %q, want %q", ident.String(), raw)
	}
}

// TestParseIdentifierMalformed tests rejection of strings outside the grammar
func TestParseIdentifierMalformed(t *testing.T) {
	cases := []string{
		"",
		"substream://",
		"substream://1024/17",           // missing :length
		"substream://1024:4096",         // missing /resourceId
		"substream://a:4096/17",         // non-numeric offset
		"substream://1024:b/17",         // non-numeric length
		"substream://1024:4096/id",      // non-numeric resource id
		"substream://-1:4096/17",        // negative offset
		"substream://1024:4096/17/18",   // trailing path component
		"substream://1024:4096/17 ",     // trailing space
		" substream://1024:4096/17",     // leading space
		"sub stream://1024:4096/17",     // space in scheme
		"://1024:4096/17",               // empty scheme
		"substream:/1024:4096/17",       // single slash
		"substream://1024:0/17",         // zero-length window
		"substream://99999999999999999999:1/1", // offset overflow
	}

	for _, raw := range cases {
		_, err := ParseIdentifier(raw)
		if err == nil {
			t.Errorf("ParseIdentifier(%q) should fail", raw)
			continue
		}
		if !errors.Is(err, ErrMalformedIdentifier) {
			t.Errorf("ParseIdentifier(%q): wrong error: %v", raw, err)
		}
	}
}
