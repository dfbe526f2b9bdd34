package irc

import "strings"

// Message is one parsed IRC line. Params keep the naive space split of the
// wire line, so a trailing multi-word parameter still carries its leading
// ":" marker on the first token; Trailing strips it in one place.
type Message struct {
	Raw     string
	Tags    map[string]string
	Prefix  string
	Command string
	Params  []string
}

// Parse decodes one line into a Message. It is a pure function with no
// failure path: malformed input degrades to a best-effort partial parse.
func Parse(line string) *Message {
	msg := &Message{
		Raw:  line,
		Tags: make(map[string]string),
	}

	rest := line

	if strings.HasPrefix(rest, "@") {
		if sp := strings.IndexByte(rest, ' '); sp != -1 {
			parseTags(rest[1:sp], msg.Tags)
			rest = rest[sp+1:]
		} else {
			parseTags(rest[1:], msg.Tags)
			rest = ""
		}
	}

	if strings.HasPrefix(rest, ":") {
		if sp := strings.IndexByte(rest, ' '); sp != -1 {
			msg.Prefix = rest[1:sp]
			rest = rest[sp+1:]
		} else {
			msg.Prefix = rest[1:]
			rest = ""
		}
	}

	if rest == "" {
		return msg
	}

	parts := strings.Split(rest, " ")
	msg.Command = parts[0]
	msg.Params = parts[1:]

	return msg
}

func parseTags(rawTags string, tags map[string]string) {
	for _, tag := range strings.Split(rawTags, ";") {
		if tag == "" {
			continue
		}
		if eq := strings.IndexByte(tag, '='); eq != -1 {
			tags[tag[:eq]] = tag[eq+1:]
		}
	}
}

// Trailing rejoins a trailing multi-word parameter and strips the one
// leading ":" marker left behind by the space split.
func Trailing(params []string) string {
	return strings.TrimPrefix(strings.Join(params, " "), ":")
}

// SenderNick extracts the login from a nick!user@host prefix; a prefix
// without "!" is returned whole.
func SenderNick(prefix string) string {
	if i := strings.IndexByte(prefix, '!'); i != -1 {
		return prefix[:i]
	}
	return prefix
}
