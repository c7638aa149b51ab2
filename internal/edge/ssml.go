package edge

import "strings"

var (
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
)

// BuildSSML produces the speech markup document sent in the ssml message.
// Voice and prosody values are escaped for attribute context, the text for
// character data. The service accepts keyword prosody values (pitch: x-low,
// low, medium, high, x-high, default; rate: x-slow..x-fast, default; volume:
// silent, x-soft..x-loud, default); unknown values pass through and the
// service decides.
func BuildSSML(text, voice, pitch, rate, volume string) string {
	var b strings.Builder
	b.WriteString(`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xmlns:mstts="https://www.w3.org/2001/mstts" xml:lang="en-US">`)
	b.WriteString(`<voice name="`)
	b.WriteString(attrEscaper.Replace(voice))
	b.WriteString(`"><prosody pitch="`)
	b.WriteString(attrEscaper.Replace(pitch))
	b.WriteString(`" rate="`)
	b.WriteString(attrEscaper.Replace(rate))
	b.WriteString(`" volume="`)
	b.WriteString(attrEscaper.Replace(volume))
	b.WriteString(`">`)
	b.WriteString(textEscaper.Replace(text))
	b.WriteString(`</prosody></voice></speak>`)
	return b.String()
}
