package vin

import (
	"strings"
	"testing"
)

func TestNormalize_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "identity", in: "1HGCM82633A004352", out: "1HGCM82633A004352"},
		{name: "lowercase", in: "1hgcm82633a004352", out: "1HGCM82633A004352"},
		{name: "surrounding whitespace", in: "  1HGCM82633A004352\t\n", out: "1HGCM82633A004352"},
		{name: "fullwidth fold", in: "１ＨＧCM82633A004352", out: "1HGCM82633A004352"},
		{name: "internal separators preserved", in: "1HG-CM82633A00435", out: "1HG-CM82633A00435"},
		{name: "empty", in: "", out: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			if got != tc.out {
				t.Fatalf("Normalize(%q) = %q want %q", tc.in, got, tc.out)
			}
			if again := Normalize(got); again != got {
				t.Fatalf("Normalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestValidFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{name: "valid", in: "1HGCM82633A004352", ok: true},
		{name: "too short", in: "1HGCM82633A00435", ok: false},
		{name: "too long", in: "1HGCM82633A0043521", ok: false},
		{name: "contains I", in: "1HGCM82633A00435I", ok: false},
		{name: "contains O", in: "OHGCM82633A004352", ok: false},
		{name: "contains Q", in: "1HGCM82633Q004352", ok: false},
		{name: "contains separator", in: "1HG-M82633A004352", ok: false},
		{name: "lowercase rejected", in: "1hgcm82633a004352", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidFormat(tc.in); got != tc.ok {
				t.Fatalf("ValidFormat(%q) = %v want %v", tc.in, got, tc.ok)
			}
		})
	}
}

func TestCheckDigit(t *testing.T) {
	// 1HGCM82633A004352 is the canonical worked example: check digit 3
	d, ok := CheckDigit("1HGCM82633A004352")
	if !ok || d != '3' {
		t.Fatalf("CheckDigit = %q ok=%v want '3' true", d, ok)
	}
	// 11111111111111111 sums to 11*... mod 11 == 0 -> '0' at position 8 ('1' there), still computes
	d, ok = CheckDigit("11111111111111111")
	if !ok {
		t.Fatalf("CheckDigit on all-ones should compute")
	}
	if d != '1' {
		// sum = sum(weights) = 89, 89 mod 11 = 1
		t.Fatalf("CheckDigit(all ones) = %q want '1'", d)
	}
}

func TestValidChecksum_FlipDetection(t *testing.T) {
	const good = "1HGCM82633A004352"
	if !ValidChecksum(good) {
		t.Fatalf("expected valid checksum for %s", good)
	}
	// a single-character flip that changes the transliteration value shifts
	// the weighted sum by w*delta with 0 < w,|delta| < 11, which is never
	// 0 mod 11, so the checksum must break; flips that keep the value (e.g.
	// 'A' -> '1', both 1) are legitimate collisions and are not asserted
	for i := 0; i < Length; i++ {
		if i == 8 {
			continue
		}
		b := []byte(good)
		sub := byte('2')
		if translit[b[i]] == translit[sub] {
			sub = '3'
		}
		b[i] = sub
		if ValidChecksum(string(b)) {
			t.Fatalf("flip at %d unexpectedly kept checksum valid: %s", i, string(b))
		}
	}
}

func TestValidate_Reasons(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		reason Reason
	}{
		{name: "empty", in: "", reason: ReasonEmpty},
		{name: "wrong length", in: "1HGCM82633A00435", reason: ReasonWrongLength},
		{name: "charset", in: "1HGCM82633A00435I", reason: ReasonCharset},
		{name: "checksum", in: "1HGCM82634A004352", reason: ReasonChecksum},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.in)
			if err == nil {
				t.Fatalf("expected %s error", tc.reason)
			}
			if err.Reason != tc.reason {
				t.Fatalf("reason = %s want %s", err.Reason, tc.reason)
			}
		})
	}
	if err := Validate("1HGCM82633A004352"); err != nil {
		t.Fatalf("unexpected error for valid vin: %v", err)
	}
}

func TestValidate_WrongLengthMessageCarriesLength(t *testing.T) {
	err := Validate("1HGCM82633A00435")
	if err == nil || err.Reason != ReasonWrongLength {
		t.Fatalf("expected wrong_length, got %v", err)
	}
	if err.Length != 16 {
		t.Fatalf("Length = %d want 16", err.Length)
	}
	if got := err.Error(); !strings.Contains(got, "got 16") {
		t.Fatalf("message %q should report the observed length", got)
	}
}

func TestWMIAndYearCode(t *testing.T) {
	const v = "1HGCM82633A004352"
	if got := WMI(v); got != "1HG" {
		t.Fatalf("WMI = %q", got)
	}
	if got := YearCode(v); got != '3' {
		t.Fatalf("YearCode = %q", got)
	}
	if WMI("1H") != "" || YearCode("1HGCM8263") != 0 {
		t.Fatalf("short inputs should return zero values")
	}
}
