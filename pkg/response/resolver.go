package response

import (
	"fmt"
	"log/slog"

	"github.com/ewskit/ewskit/pkg/logging"
	"github.com/ewskit/ewskit/pkg/names"
	"github.com/ewskit/ewskit/pkg/parsed"
)

// factory constructs an outcome from one decoded message fragment.
type factory func(tag string, frag parsed.Map) Outcome

// registry maps wire tags to specific outcome types. Tags not listed
// here resolve to Generic. The lookup never fails: new message kinds on
// the wire degrade to the default handler instead of crashing decode.
var registry = map[string]factory{
	"FreeBusyResponse": func(tag string, frag parsed.Map) Outcome {
		return NewFreeBusy(tag, frag)
	},
	"GetStreamingEventsResponseMessage": func(tag string, frag parsed.Map) Outcome {
		return NewStreaming(tag, frag)
	},
	"GetRoomListsResponse": func(tag string, frag parsed.Map) Outcome {
		return NewMultiStatus(tag, frag)
	},
	"GetRoomsResponse": func(tag string, frag parsed.Map) Outcome {
		return NewMultiStatus(tag, frag)
	},
}

// Resolver turns decoded response bodies into outcome sequences.
type Resolver struct {
	log *slog.Logger
}

// NewResolver creates a resolver. A nil logger disables logging.
func NewResolver(log *slog.Logger) *Resolver {
	if log == nil {
		log = logging.Nop()
	}
	return &Resolver{log: log}
}

// ResolveOutcomes decodes a response body with a silent resolver.
func ResolveOutcomes(doc *parsed.Document) ([]Outcome, error) {
	return NewResolver(nil).Resolve(doc)
}

// Resolve iterates the response-message collection of the body and
// yields one outcome per reported message, in wire order, never merged.
// Responses without a message collection (availability, room lists)
// resolve the operation response element itself as a single outcome.
func (r *Resolver) Resolve(doc *parsed.Document) ([]Outcome, error) {
	body, err := doc.Response()
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty response body", parsed.ErrNotFound)
	}

	opTag, opNode, ok := singleEntry(body[0])
	if !ok {
		return nil, fmt.Errorf("%w: response element", parsed.ErrNotFound)
	}
	opElems := parsed.Elems(opNode)

	for _, collection := range []string{"response_messages", "free_busy_response_array"} {
		coll, found := parsed.FirstMatching(opElems, collection)
		if !found {
			continue
		}
		msgs := parsed.Elems(coll)
		outcomes := make([]Outcome, 0, len(msgs))
		for _, member := range msgs {
			tag, frag, ok := singleEntry(member)
			if !ok {
				continue
			}
			outcomes = append(outcomes, r.resolveOne(tag, frag))
		}
		return outcomes, nil
	}

	return []Outcome{r.resolveOne(opTag, opNode)}, nil
}

func (r *Resolver) resolveOne(tag string, frag parsed.Map) Outcome {
	wire := names.WireName(tag)
	if f, ok := registry[wire]; ok {
		return f(tag, frag)
	}
	r.log.Debug("no specific handler for outcome type, using generic", "tag", wire)
	return NewGeneric(tag, frag)
}

// singleEntry unwraps a single-key parsed node into its tag and value.
func singleEntry(member any) (string, parsed.Map, bool) {
	m, ok := member.(parsed.Map)
	if !ok || m == nil || m.Len() == 0 {
		return "", nil, false
	}
	pair := m.Oldest()
	frag, _ := pair.Value.(parsed.Map)
	return pair.Key, frag, true
}
