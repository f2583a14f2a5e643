package agent

import (
	"fmt"
	"strings"
)

// Sentinel tokens the generator is instructed to emit. The create sentinel is
// searched anywhere in the reply because models tend to prepend pleasantries;
// the delete sentinel must open the reply.
const (
	createSentinel = "CALENDAR-----"
	deleteSentinel = "DELETE"
)

// ResponseKind tags the shape of a generated reply.
type ResponseKind int

const (
	// KindReply is a plain conversational answer.
	KindReply ResponseKind = iota
	// KindCreate is an event-creation block.
	KindCreate
	// KindDelete is an event-deletion criteria block.
	KindDelete
)

func (k ResponseKind) String() string {
	switch k {
	case KindCreate:
		return "create"
	case KindDelete:
		return "delete"
	default:
		return "reply"
	}
}

// Response is the classified form of a raw generated reply. Fields is
// populated only for create/delete blocks; Text only for plain replies.
type Response struct {
	Kind   ResponseKind
	Fields map[string]string
	Text   string
}

// MissingFieldsError reports required create fields absent from a block.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// requiredCreateFields in reporting order.
var requiredCreateFields = []string{"title", "date", "time"}

// Extract classifies a raw generated reply and parses its key:value body.
// A create block missing any of title/date/time fails with *MissingFieldsError.
func Extract(raw string) (Response, error) {
	trimmed := strings.TrimSpace(raw)

	if idx := strings.Index(trimmed, createSentinel); idx >= 0 {
		body := trimmed[idx+len(createSentinel):]
		fields := parseFields(body)

		var missing []string
		for _, name := range requiredCreateFields {
			if fields[name] == "" {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return Response{}, &MissingFieldsError{Fields: missing}
		}

		return Response{Kind: KindCreate, Fields: fields}, nil
	}

	if strings.HasPrefix(trimmed, deleteSentinel) {
		body := trimmed[len(deleteSentinel):]
		return Response{Kind: KindDelete, Fields: parseFields(body)}, nil
	}

	return Response{Kind: KindReply, Text: trimmed}, nil
}

// parseFields splits a block body into a key/value mapping. Keys are
// lower-cased and trimmed; the split is on the first colon only, so values
// may contain colons (e.g. times). Blank values and the literal "none" mean
// "not specified" and contribute no entry. Unrecognized keys are kept so
// later stages can choose to honor them.
func parseFields(body string) map[string]string {
	fields := make(map[string]string)

	for _, line := range strings.Split(body, "\n") {
		if !strings.Contains(line, ":") {
			continue
		}

		key, value, _ := strings.Cut(line, ":")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		if key == "" || value == "" || value == "none" {
			continue
		}
		fields[key] = value
	}

	return fields
}
