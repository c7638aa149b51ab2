package edge

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestBuildSSMLEscapesText(t *testing.T) {
	text := `5 < 6 & "quotes" stay'`
	doc := BuildSSML(text, "en-US-AriaNeural", "medium", "medium", "medium")

	type prosody struct {
		Text string `xml:",chardata"`
	}
	type voice struct {
		Name    string  `xml:"name,attr"`
		Prosody prosody `xml:"prosody"`
	}
	type speak struct {
		Voice voice `xml:"voice"`
	}

	var parsed speak
	if err := xml.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("document is not well formed: %v\n%s", err, doc)
	}
	if parsed.Voice.Name != "en-US-AriaNeural" {
		t.Fatalf("expected voice name, got %q", parsed.Voice.Name)
	}
	if parsed.Voice.Prosody.Text != text {
		t.Fatalf("round-tripped text %q, want %q", parsed.Voice.Prosody.Text, text)
	}
}

func TestBuildSSMLEscapesAttributes(t *testing.T) {
	doc := BuildSSML("hi", `voi"ce<&>'`, "x-low", "fast", "loud")
	if strings.Contains(doc, `voi"ce`) || strings.Contains(doc, "<&>") {
		t.Fatalf("attribute not escaped:\n%s", doc)
	}
	if !strings.Contains(doc, `name="voi&quot;ce&lt;&amp;&gt;&apos;"`) {
		t.Fatalf("unexpected attribute escaping:\n%s", doc)
	}
}

func TestBuildSSMLShape(t *testing.T) {
	doc := BuildSSML("hello", "en-GB-SoniaNeural", "high", "slow", "soft")
	for _, want := range []string{
		`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis"`,
		`xml:lang="en-US"`,
		`<voice name="en-GB-SoniaNeural">`,
		`<prosody pitch="high" rate="slow" volume="soft">hello</prosody>`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestBuildSSMLDeterministic(t *testing.T) {
	a := BuildSSML("träum & groß", "de-DE-KatjaNeural", "default", "default", "default")
	b := BuildSSML("träum & groß", "de-DE-KatjaNeural", "default", "default", "default")
	if a != b {
		t.Fatal("expected byte-identical output for identical arguments")
	}
}

func TestBuildSSMLEmptyText(t *testing.T) {
	doc := BuildSSML("", "en-US-AriaNeural", "default", "default", "default")
	if !strings.Contains(doc, `volume="default"></prosody>`) {
		t.Fatalf("expected empty prosody content:\n%s", doc)
	}
}
