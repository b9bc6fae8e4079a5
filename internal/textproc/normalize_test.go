package textproc

import (
	"strings"
	"testing"
)

func TestNormalizeTextRemovesControlsKeepsAccents(t *testing.T) {
	in := "café\x00 \x01déjà\ufeff vu"
	out := NormalizeText(in)
	if out != "café déjà vu" {
		t.Fatalf("unexpected normalized output: %q", out)
	}
}

func TestNormalizeTextNewlinesAndSpaces(t *testing.T) {
	in := "one\r\ntwo\rthree\t\t four"
	out := NormalizeText(in)
	if out != "one\ntwo\nthree four" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNormalizeTextCapsBlankLines(t *testing.T) {
	out := NormalizeText("a\n\n\n\n\n\nb")
	if out != "a\n\n\nb" {
		t.Fatalf("expected at most two blank lines, got %q", out)
	}
}

func TestNormalizeTextNonBreakingSpace(t *testing.T) {
	out := NormalizeText("un\u00a0livre")
	if out != "un livre" {
		t.Fatalf("expected nbsp converted to space, got %q", out)
	}
}

func TestNormalizeTextEmptyInput(t *testing.T) {
	if out := NormalizeText(""); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
	if out := NormalizeText("   \n\t "); out != "" {
		t.Fatalf("expected whitespace-only input to normalize to empty, got %q", out)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"a\r\nb\rc\x00d",
		"line  with   spaces\n\n\n\n\nand blanks",
		"café à l'école\t\ttabs",
	}
	for _, in := range inputs {
		once := NormalizeText(in)
		twice := NormalizeText(once)
		if once != twice {
			t.Fatalf("NormalizeText not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestNormalizePDFTextIdempotent(t *testing.T) {
	in := "Mon Livre\npage one docu-\nment text,\ncontinued here.\n\n12\n\nMon Livre\nmore prose"
	once := NormalizePDFText(in)
	twice := NormalizePDFText(once)
	if once != twice {
		t.Fatalf("NormalizePDFText not idempotent: %q vs %q", once, twice)
	}
}

func TestNormalizePDFTextDropsPageNumbers(t *testing.T) {
	in := "first paragraph ends.\n\n42\n\nsecond paragraph starts."
	out := NormalizePDFText(in)
	if strings.Contains(out, "42") {
		t.Fatalf("page number survived: %q", out)
	}
}

func TestNormalizePDFTextRejoinsHyphenatedWords(t *testing.T) {
	in := "le docu-\nment complet"
	out := NormalizePDFText(in)
	if !strings.Contains(out, "document") {
		t.Fatalf("hyphenated word not rejoined: %q", out)
	}
}

func TestNormalizePDFTextRemovesRepeatedHeaders(t *testing.T) {
	in := "My Book Title\n\nSome real prose that continues,\nand keeps going here.\n\nMy Book Title\n\nMore real prose on the next page,\nwhich also keeps going."
	out := NormalizePDFText(in)
	if strings.Count(out, "My Book Title") != 1 {
		t.Fatalf("expected repeated header collapsed to one occurrence, got %q", out)
	}
}

func TestNormalizePDFTextJoinsBrokenSentences(t *testing.T) {
	in := "la phrase continue,\nsur la ligne suivante"
	out := NormalizePDFText(in)
	if !strings.Contains(out, "continue, sur") {
		t.Fatalf("broken sentence not rejoined: %q", out)
	}
}
