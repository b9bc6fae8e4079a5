package textproc

import "testing"

func TestDetectLanguages(t *testing.T) {
	d := NewDetector()
	cases := []struct {
		text string
		want string
	}{
		{"Le chat est dans la maison avec le chien et tout va bien pour eux.", "fr"},
		{"The cat is in the house with the dog and they are doing well.", "en"},
		{"El gato está en la casa con el perro y todo va bien para ellos.", "es"},
		{"Il gatto è nella casa con il cane e tutto va bene per loro.", "it"},
		{"Der Hund ist in dem Haus mit der Katze und alles ist gut für sie.", "de"},
	}
	for _, c := range cases {
		if got := d.Detect(c.text); got != c.want {
			t.Errorf("Detect(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestDetectDefaultsToFrench(t *testing.T) {
	d := NewDetector()
	if got := d.Detect(""); got != "fr" {
		t.Fatalf("empty input should detect fr, got %q", got)
	}
	if got := d.Detect("zzz qqq xxx 12345"); got != "fr" {
		t.Fatalf("scoreless input should detect fr, got %q", got)
	}
}

func TestDetectDeterministic(t *testing.T) {
	d := NewDetector()
	text := "Un livre sur la mer et le vent, pour tout lecteur qui se laisse porter."
	first := d.Detect(text)
	for i := 0; i < 5; i++ {
		if got := d.Detect(text); got != first {
			t.Fatalf("Detect not deterministic: %q then %q", first, got)
		}
	}
}

func TestReadingSpeed(t *testing.T) {
	cases := map[string]int{"fr": 200, "en": 220, "es": 190, "it": 185, "de": 180, "xx": 200, "": 200}
	for lang, want := range cases {
		if got := ReadingSpeed(lang); got != want {
			t.Errorf("ReadingSpeed(%q) = %d, want %d", lang, got, want)
		}
	}
}
